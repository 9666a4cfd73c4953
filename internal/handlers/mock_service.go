package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"ir_climate/internal/models"
	"ir_climate/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type sendCall struct {
	command string
	value   string
}

type mockRemote struct {
	reply string
	err   error
	calls []sendCall
}

func (m *mockRemote) Send(ctx context.Context, command, value string) (string, error) {
	m.calls = append(m.calls, sendCall{command: command, value: value})
	return m.reply, m.err
}

type mockMonitoring struct {
	mu     sync.Mutex
	status models.RemoteStatus
	broker string
	calls  int
}

func (m *mockMonitoring) BrokerStatus() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broker
}

func (m *mockMonitoring) GetStatus(ctx context.Context) models.RemoteStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.status
}

type mockClimate struct {
	reading models.ClimateReading
	err     error
}

func (m *mockClimate) ReadClimate(ctx context.Context) (models.ClimateReading, error) {
	return m.reading, m.err
}

type mockEventLog struct {
	resp       []models.TransmissionEvent
	err        error
	lastFilter service.LogFilter
	calls      int

	// delegate, when set, answers List after recording the call
	delegate service.EventLog
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.TransmissionEvent, error) {
	m.calls++
	m.lastFilter = f
	if m.delegate != nil {
		return m.delegate.List(ctx, f)
	}
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeader(req *http.Request, h http.Header) *http.Request {
	for k, vv := range h {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
