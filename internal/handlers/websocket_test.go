package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ir_climate/internal/models"
	"ir_climate/internal/service"
)

func TestPollInterval(t *testing.T) {
	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", pollDefault},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", pollDefault},
		{"interval_too_small", "/ws?interval=1ms", pollDefault},
		{"interval_ms_too_large", "/ws?interval_ms=20000", pollDefault},
		{"interval_ms_too_small", "/ws?interval_ms=5", pollDefault},
		{"interval_ms_negative", "/ws?interval_ms=-100", pollDefault},
		{"interval_invalid_string", "/ws?interval=bogus", pollDefault},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"invalid_interval_falls_back_to_ms", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := pollInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestSameStatus(t *testing.T) {
	until := time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)
	later := until.Add(time.Second)
	idle := models.RemoteStatus{State: models.DefaultApplianceState()}
	armed := models.RemoteStatus{State: idle.State, IndicatorArmed: true, IndicatorUntil: &until}

	rearmed := armed
	rearmed.IndicatorUntil = &later

	untilCopy := until
	sameArm := armed
	sameArm.IndicatorUntil = &untilCopy

	cooled := idle
	cooled.State.Mode = models.ModeCool

	if !sameStatus(idle, idle) || !sameStatus(armed, sameArm) {
		t.Fatalf("equal snapshots reported as different")
	}
	for name, other := range map[string]models.RemoteStatus{"armed": armed, "rearmed": rearmed, "cooled": cooled} {
		base := idle
		if name == "rearmed" {
			base = armed
		}
		if sameStatus(base, other) {
			t.Fatalf("%s: change not detected", name)
		}
	}
}

type wsFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialStatus(t *testing.T, s *service.Service) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(newTestRouter(s))
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = url.Values{"interval_ms": {"50"}}.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn, wait time.Duration) (models.RemoteStatus, error) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	var f wsFrame
	if err := conn.ReadJSON(&f); err != nil {
		return models.RemoteStatus{}, err
	}
	if f.Type != "status" {
		t.Fatalf("bad envelope type %q", f.Type)
	}
	var st models.RemoteStatus
	if err := json.Unmarshal(f.Data, &st); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	return st, nil
}

func TestWebSocket_PushesInitialThenChanges(t *testing.T) {
	state := models.DefaultApplianceState()
	state.Power = true
	mon := &mockMonitoring{status: models.RemoteStatus{State: state, IndicatorArmed: true}}
	conn := dialStatus(t, &service.Service{Monitoring: mon})

	st, err := readStatus(t, conn, time.Second)
	if err != nil {
		t.Fatalf("initial frame: %v", err)
	}
	if !st.State.Power || !st.IndicatorArmed || st.State.Mode != models.ModeHeat {
		t.Fatalf("unexpected initial status: %+v", st)
	}

	// unchanged status produces no frame
	if _, err := readStatus(t, conn, 200*time.Millisecond); err == nil {
		t.Fatalf("expected no frame while status is unchanged")
	}
}

func TestWebSocket_IndicatorClearIsPushed(t *testing.T) {
	mon := &mockMonitoring{status: models.RemoteStatus{State: models.DefaultApplianceState(), IndicatorArmed: true}}
	conn := dialStatus(t, &service.Service{Monitoring: mon})

	if _, err := readStatus(t, conn, time.Second); err != nil {
		t.Fatalf("initial frame: %v", err)
	}

	mon.mu.Lock()
	mon.status.IndicatorArmed = false
	mon.mu.Unlock()

	st, err := readStatus(t, conn, time.Second)
	if err != nil {
		t.Fatalf("change frame: %v", err)
	}
	if st.IndicatorArmed {
		t.Fatalf("expected cleared indicator, got %+v", st)
	}
}

func TestWebSocket_PlainHTTPIsRejected(t *testing.T) {
	w := doRequest(t, &service.Service{Monitoring: &mockMonitoring{}}, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-upgrade request, got %d", w.Code)
	}
}
