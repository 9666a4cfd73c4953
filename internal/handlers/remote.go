package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ir_climate/internal/service"
)

const (
	statusOK = "ok"

	msgMissingCommand = "Missing 'command' parameter"
	fmtCommandFailed  = "FAILED TO Command: %s, Value: %s"

	errSensorUnavailable = "sensor unavailable"
)

// logAndJSONError logs err under logKey and writes {"error": userMsg}.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...any) {
	if h.log != nil && err != nil {
		fields := append([]any{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// requestParam reads name from a form body first, then from the query string.
func requestParam(c *gin.Context, name string) (string, bool) {
	if v, ok := c.GetPostForm(name); ok {
		return v, true
	}
	return c.GetQuery(name)
}

// @Summary      Health check
// @Description  "mqtt" is connected, disconnected or disabled. A lost broker does not make the remote unhealthy.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	body := gin.H{"status": statusOK}
	if h.services.Monitoring != nil {
		body["mqtt"] = h.services.Monitoring.BrokerStatus()
	}
	c.JSON(http.StatusOK, body)
}

// @Summary      Send an IR command
// @Description  Changes one appliance setting and transmits the full state. Commands: temp, mode, fan, on, off, swing_mode.
// @Tags         remote
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        command  query  string  true   "Command name"  Enums(temp,mode,fan,on,off,swing_mode)
// @Param        value    query  string  false  "Command value"  example(22)
// @Success      200  {string}  string  "confirmation, e.g. Temperature = 22"
// @Failure      400  {string}  string
// @Router       /send_ir [get]
// @Router       /send_ir [post]
func (h *Handler) sendIR(c *gin.Context) {
	command, ok := requestParam(c, "command")
	if !ok {
		c.String(http.StatusBadRequest, msgMissingCommand)
		return
	}
	value, _ := requestParam(c, "value")

	msg, err := h.services.Remote.Send(c.Request.Context(), command, value)
	if err != nil {
		if h.log != nil && !service.IsValidationError(err) {
			h.log.Errorw("send_ir_failed", "command", command, "value", value, "err", err)
		}
		c.String(http.StatusBadRequest, fmtCommandFailed, command, value)
		return
	}
	c.String(http.StatusOK, "%s", msg)
}

// @Summary      Ambient climate
// @Tags         remote
// @Produce      json
// @Success      200  {object}  models.ClimateReading
// @Failure      503  {object}  map[string]string
// @Router       /temp [get]
func (h *Handler) temp(c *gin.Context) {
	reading, err := h.services.Climate.ReadClimate(c.Request.Context())
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrSensorUnavailable) {
			code = http.StatusServiceUnavailable
		}
		h.logAndJSONError(c, code, errSensorUnavailable, "climate_read_failed", err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// @Summary      Remote state
// @Description  Held appliance state and busy indicator
// @Tags         remote
// @Produce      json
// @Success      200  {object}  models.RemoteStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/remote/state [get]
// @Security     BearerAuth
func (h *Handler) getRemoteState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetStatus(c.Request.Context()))
}
