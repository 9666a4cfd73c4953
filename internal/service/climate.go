package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
	"ir_climate/internal/sensor"
)

var ErrSensorUnavailable = errors.New("sensor unavailable")

type ClimateService struct {
	reader sensor.Reader
	log    *logger.Logger
}

func NewClimateService(r sensor.Reader, log *logger.Logger) *ClimateService {
	if r == nil {
		r = sensor.Disabled{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ClimateService{reader: r, log: log}
}

// ReadClimate returns the current reading rounded to two decimals.
func (s *ClimateService) ReadClimate(ctx context.Context) (models.ClimateReading, error) {
	r, err := s.reader.Read(ctx)
	if err != nil {
		s.log.Warnw("sensor_read_failed", "err", err)
		return models.ClimateReading{}, fmt.Errorf("%w: %v", ErrSensorUnavailable, err)
	}
	return models.ClimateReading{
		Temperature: round2(r.Temperature),
		Humidity:    round2(r.Humidity),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
