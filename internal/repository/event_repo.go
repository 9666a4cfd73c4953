package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ir_climate/internal/models"
)

const (
	insertEventSQL = `INSERT INTO transmission_events (id, occurred_at, type, command, value, message, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, command, value, message, meta FROM transmission_events`

	// newest first; rowid breaks ties within the same second
	orderEventsSQL = ` ORDER BY occurred_at DESC, rowid DESC`

	// SQLite TIMESTAMP text format
	sqliteTimeLayout = "2006-01-02 15:04:05"
)

// EventSQLite keeps TransmissionEvents in the transmission_events table.
type EventSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewEventSQLite(db *sql.DB) *EventSQLite {
	return &EventSQLite{db: db, now: time.Now}
}

// Append stores e. A missing EventID or OccurredAt is filled in; metadata is
// stored as JSON and dropped if it cannot be encoded.
func (r *EventSQLite) Append(ctx context.Context, e models.TransmissionEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	at := e.OccurredAt
	if at.IsZero() {
		at = r.now()
	}

	var meta sql.NullString
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			meta = sql.NullString{String: string(b), Valid: true}
		}
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		at.UTC().Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Command,
		e.Value,
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert %s event: %w", e.Type, err)
	}
	return nil
}

// buildListQuery renders q as a SELECT with positional arguments.
func buildListQuery(q EventQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	if !q.From.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(sqliteTimeLayout))
	}
	if !q.To.IsZero() {
		where = append(where, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		where = append(where, "type = ?")
		args = append(args, typ)
	}
	if cmd := strings.TrimSpace(q.Command); cmd != "" {
		where = append(where, "command = ?")
		args = append(args, cmd)
	}

	var sb strings.Builder
	sb.WriteString(selectEventSQL)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(orderEventsSQL)
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return sb.String(), args
}

// List returns the events matching q, newest first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.TransmissionEvent, error) {
	query, args := buildListQuery(q)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]models.TransmissionEvent, 0, q.Limit)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (models.TransmissionEvent, error) {
	var (
		ev   models.TransmissionEvent
		meta sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Command, &ev.Value, &ev.Description, &meta); err != nil {
		return ev, fmt.Errorf("scan event: %w", err)
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	ev.Metadata = decodeMeta(meta)
	return ev, nil
}

// decodeMeta parses stored JSON. Malformed text is returned as-is.
func decodeMeta(meta sql.NullString) any {
	if !meta.Valid || meta.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(meta.String), &v); err != nil {
		return meta.String
	}
	return v
}
