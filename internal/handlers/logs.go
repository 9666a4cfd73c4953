package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ir_climate/internal/models"
	"ir_climate/internal/service"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

var queryTimeLayouts = []string{time.RFC3339, layoutDateTime, layoutDate}

// logsQuery is the query string of GET /api/v1/logs/.
type logsQuery struct {
	From    string `form:"from"`
	To      string `form:"to"`
	Type    string `form:"type"`
	Command string `form:"command"`
	Limit   int    `form:"limit" binding:"omitempty,min=1"`
}

// logsResponse is the body of a successful listing.
type logsResponse struct {
	Count  int                        `json:"count"`
	Events []models.TransmissionEvent `json:"events"`
}

// filter converts the raw query into a LogFilter. A date-only "to" covers the
// whole day.
func (q logsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: q.Type, Command: q.Command, Limit: q.Limit}
	var err error
	if q.From != "" {
		if f.From, err = parseQueryTime(q.From); err != nil {
			return f, fmt.Errorf("invalid 'from': %w", err)
		}
	}
	if q.To != "" {
		if f.To, err = parseQueryTime(q.To); err != nil {
			return f, fmt.Errorf("invalid 'to': %w", err)
		}
		if !strings.ContainsAny(q.To, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f, nil
}

var errQueryTime = errors.New("use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'")

// parseQueryTime tries each accepted layout and returns the time in UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, errQueryTime)
}

// @Summary      List transmission audit events
// @Description  Every /send_ir request is recorded, newest first. Dates accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from     query  string  false  "Start of range"  example(2025-08-01)
// @Param        to       query  string  false  "End of range"    example(2025-08-31)
// @Param        type     query  string  false  "Event type"  Enums(TRANSMIT,REJECTED,TRANSMIT_FAILED)
// @Param        command  query  string  false  "Command name as sent to /send_ir"  example(temp)
// @Param        limit    query  int     false  "Maximum events (default 100, max 1000)"
// @Success      200  {object}  logsResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs/ [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	var q logsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}
	f, err := q.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		if service.IsFilterError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load logs", "logs_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type, "command", f.Command)
		return
	}
	c.JSON(http.StatusOK, logsResponse{Count: len(events), Events: events})
}
