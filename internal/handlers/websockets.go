package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ir_climate/internal/models"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxMsgSize   = 1 << 12
	pollDefault  = 250 * time.Millisecond
	pollMin      = 50 * time.Millisecond
	pollMax      = 10 * time.Second
	wsTypeStatus = "status"
)

// wsEnvelope is the frame written to WebSocket clients.
type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// The remote lives on a home LAN and serves dashboards from any origin.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream remote status
// @Description  Upgrades to a WebSocket. Sends {"type":"status","data":RemoteStatus} on connect and again whenever the state or the busy indicator changes. The status is polled every interval.
// @Tags         remote
// @Param        interval     query  string  false  "Poll period as a Go duration, 50ms..10s"  example(100ms)
// @Param        interval_ms  query  int     false  "Poll period in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	poll := pollInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.drainReads(conn, done)

	if err := h.streamStatus(c.Request.Context(), conn, poll, done); err != nil && h.log != nil {
		h.log.Infow("ws_stream_ended", "err", err)
	}
}

// streamStatus writes the current status, then every change seen at poll
// resolution, until the client goes away.
func (h *Handler) streamStatus(ctx context.Context, conn *websocket.Conn, poll time.Duration, done <-chan struct{}) error {
	tick := time.NewTicker(poll)
	defer tick.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	last := h.services.Monitoring.GetStatus(ctx)
	if err := writeFrame(conn, wsEnvelope{Type: wsTypeStatus, Data: last}); err != nil {
		return err
	}

	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-tick.C:
			st := h.services.Monitoring.GetStatus(ctx)
			if sameStatus(st, last) {
				continue
			}
			if err := writeFrame(conn, wsEnvelope{Type: wsTypeStatus, Data: st}); err != nil {
				return err
			}
			last = st
		}
	}
}

func writeFrame(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

// sameStatus compares two snapshots, including the indicator deadline.
func sameStatus(a, b models.RemoteStatus) bool {
	if a.State != b.State || a.IndicatorArmed != b.IndicatorArmed {
		return false
	}
	if a.IndicatorUntil == nil || b.IndicatorUntil == nil {
		return a.IndicatorUntil == nil && b.IndicatorUntil == nil
	}
	return a.IndicatorUntil.Equal(*b.IndicatorUntil)
}

// pollInterval reads ?interval=100ms or ?interval_ms=100. Out-of-range or
// malformed values fall back to pollDefault.
func pollInterval(c *gin.Context) time.Duration {
	inRange := func(d time.Duration) bool { return d >= pollMin && d <= pollMax }

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && inRange(d) {
			return d
		}
	}
	if s := c.Query("interval_ms"); s != "" {
		if ms, err := strconv.Atoi(s); err == nil {
			if d := time.Duration(ms) * time.Millisecond; inRange(d) {
				return d
			}
		}
	}
	return pollDefault
}

// drainReads consumes control frames and closes done on disconnect.
func (h *Handler) drainReads(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}
