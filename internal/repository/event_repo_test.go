package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ir_climate/internal/models"
)

var eventColumns = []string{"id", "occurred_at", "type", "command", "value", "message", "meta"}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newEventRepo(t *testing.T) (*EventSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("mock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewEventSQLite(db), mock
}

func TestAppend_FillsIDAndClock(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)
	repo.now = func() time.Time { return time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC) }

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), "2025-07-01 09:30:00",
			"TRANSMIT", "temp", "22", "Temperature = 22",
			`{"temperature":22}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.TransmissionEvent{
		Type:        "  transmit ",
		Command:     "temp",
		Value:       "22",
		Description: "Temperature = 22",
		Metadata:    map[string]any{"temperature": 22},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_StoresGivenTimeInUTC(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs("id-1", "2025-03-04 04:06:07", "REJECTED", "mode", "turbo", "invalid value", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.TransmissionEvent{
		EventID:     "id-1",
		OccurredAt:  at,
		Type:        models.EventRejected,
		Command:     "mode",
		Value:       "turbo",
		Description: "invalid value",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_UnencodableMetadataIsDropped(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "TRANSMIT", "on", "", "Power: on", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.TransmissionEvent{
		Type: models.EventTransmit, Command: "on", Description: "Power: on",
		Metadata: func() {},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	mock.ExpectExec("INSERT INTO transmission_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.TransmissionEvent{Type: "transmit", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestBuildListQuery(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 13, 0, 0, 0, time.FixedZone("UTC+1", 3600))

	tests := []struct {
		name      string
		in        EventQuery
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no constraints",
			in:        EventQuery{},
			wantQuery: selectEventSQL + orderEventsSQL,
		},
		{
			name: "all constraints",
			in:   EventQuery{From: from, To: to, Type: " rejected ", Command: "temp", Limit: 20},
			wantQuery: selectEventSQL +
				" WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? AND command = ?" +
				orderEventsSQL + " LIMIT ?",
			wantArgs: []any{"2025-01-01 11:00:00", "2025-01-01 12:00:00", "REJECTED", "temp", 20},
		},
		{
			name:      "command and limit only",
			in:        EventQuery{Command: " fan ", Limit: 1},
			wantQuery: selectEventSQL + " WHERE command = ?" + orderEventsSQL + " LIMIT ?",
			wantArgs:  []any{"fan", 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q, args := buildListQuery(tc.in)
			if q != tc.wantQuery {
				t.Fatalf("query:\n got %s\nwant %s", q, tc.wantQuery)
			}
			if len(args) != len(tc.wantArgs) {
				t.Fatalf("args: got %v, want %v", args, tc.wantArgs)
			}
			for i := range args {
				if args[i] != tc.wantArgs[i] {
					t.Fatalf("arg %d: got %v, want %v", i, args[i], tc.wantArgs[i])
				}
			}
		})
	}
}

func TestList_ScansRowsAndMetadata(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"power": true})

	rows := sqlmock.NewRows(eventColumns).
		AddRow("2", now.Add(time.Hour), "TRANSMIT_FAILED", "fan", "low", "no ack", nil).
		AddRow("1", now, "TRANSMIT", "on", "", "Power: on", string(js)).
		AddRow("0", now.Add(-time.Hour), "TRANSMIT", "on", "", "Power: on", "{not json")

	mock.ExpectQuery(regexp.QuoteMeta(selectEventSQL + orderEventsSQL)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), EventQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 || got[0].EventID != "2" || got[1].EventID != "1" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if got[0].Command != "fan" || got[0].Value != "low" || got[0].Metadata != nil {
		t.Fatalf("first row not scanned: %+v", got[0])
	}
	if b, _ := json.Marshal(got[1].Metadata); string(b) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", b, js)
	}
	if got[2].Metadata != "{not json" {
		t.Fatalf("expected raw metadata, got %#v", got[2].Metadata)
	}
}

func TestList_PassesFilterArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventSQL + " WHERE type = ? AND command = ?" + orderEventsSQL + " LIMIT ?")).
		WithArgs("REJECTED", "swing_mode", 5).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow("3", time.Now(), "REJECTED", "swing_mode", "diagonal", "c", nil))

	got, err := repo.List(ctx(t), EventQuery{Type: "rejected", Command: "swing_mode", Limit: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Value != "diagonal" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestList_Errors(t *testing.T) {
	t.Parallel()

	t.Run("query", func(t *testing.T) {
		repo, mock := newEventRepo(t)
		mock.ExpectQuery("SELECT id, occurred_at").WillReturnError(errors.New("locked"))
		if _, err := repo.List(ctx(t), EventQuery{}); err == nil || !strings.Contains(err.Error(), "locked") {
			t.Fatalf("expected query error, got %v", err)
		}
	})

	t.Run("scan", func(t *testing.T) {
		repo, mock := newEventRepo(t)
		rows := sqlmock.NewRows(eventColumns).
			// occurred_at wrong type to force scan error
			AddRow("x", 123, "TRANSMIT", "on", "", "msg", nil)
		mock.ExpectQuery("SELECT id, occurred_at").WillReturnRows(rows)
		if _, err := repo.List(ctx(t), EventQuery{}); err == nil {
			t.Fatalf("expected scan error, got nil")
		}
	})
}

func TestDecodeMeta(t *testing.T) {
	t.Parallel()
	if v := decodeMeta(sql.NullString{}); v != nil {
		t.Fatalf("null meta: got %#v", v)
	}
	if v := decodeMeta(sql.NullString{String: "", Valid: true}); v != nil {
		t.Fatalf("empty meta: got %#v", v)
	}
	v, ok := decodeMeta(sql.NullString{String: `{"mode":"cool"}`, Valid: true}).(map[string]any)
	if !ok || v["mode"] != "cool" {
		t.Fatalf("json meta: got %#v", v)
	}
}
