package service

import (
	"context"
	"time"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
	"ir_climate/internal/mqtt"
	"ir_climate/internal/remote"
	"ir_climate/internal/repository"
	"ir_climate/internal/sensor"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Remote turns one /send_ir request into a transmission.
type Remote interface {
	Send(ctx context.Context, command, value string) (string, error)
}

// Monitoring exposes the current appliance state and indicator.
type Monitoring interface {
	GetStatus(ctx context.Context) models.RemoteStatus
	BrokerStatus() string
}

// Climate exposes the ambient sensor.
type Climate interface {
	ReadClimate(ctx context.Context) (models.ClimateReading, error)
}

// EventLog exposes the audit log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.TransmissionEvent, error)
}

// Ticker clears the busy indicator once its timeout elapses.
// Stop via context cancellation.
type Ticker interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Remote
	Monitoring
	Climate
	EventLog
	Ticker
	Authorization
}

// Deps are the non-repository collaborators of the services.
type Deps struct {
	Controller *remote.Controller
	Translator *remote.Translator
	Sensor     sensor.Reader
	Publisher  mqtt.Publisher
	Auth       AuthConfig
	Log        *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Remote:        NewRemoteService(deps.Translator, deps.Controller, repos.EventRepo, deps.Publisher, deps.Log.Component("remote")),
		Monitoring:    NewMonitoringService(deps.Controller, deps.Publisher),
		Climate:       NewClimateService(deps.Sensor, deps.Log.Component("climate")),
		EventLog:      NewEventLogService(repos.EventRepo),
		Ticker:        NewTickerService(deps.Controller),
		Authorization: NewAuthService(repos.Auth, deps.Auth),
	}
}
