package service

import (
	"context"

	"ir_climate/internal/models"
	"ir_climate/internal/mqtt"
	"ir_climate/internal/remote"
)

type MonitoringService struct {
	controller *remote.Controller
	publisher  mqtt.Publisher
}

// NewMonitoringService reports on c. A nil pub reads as a disabled broker.
func NewMonitoringService(c *remote.Controller, pub mqtt.Publisher) *MonitoringService {
	if pub == nil {
		pub = mqtt.Disabled{}
	}
	return &MonitoringService{controller: c, publisher: pub}
}

// GetStatus returns the in-memory appliance state with the indicator deadline in UTC.
func (s *MonitoringService) GetStatus(ctx context.Context) models.RemoteStatus {
	st := s.controller.Status()
	if st.IndicatorUntil != nil {
		u := st.IndicatorUntil.UTC()
		st.IndicatorUntil = &u
	}
	return st
}

// BrokerStatus is the MQTT link state: connected, disconnected or disabled.
func (s *MonitoringService) BrokerStatus() string {
	return mqtt.Status(s.publisher)
}
