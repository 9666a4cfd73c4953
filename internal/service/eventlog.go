package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ir_climate/internal/models"
	"ir_climate/internal/repository"
)

// EventLogService reads the /send_ir audit trail.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	errUnknownEventType = errors.New("unknown event type")
	errInvalidLimit     = fmt.Errorf("limit must be between 1 and %d", MaxLogLimit)
)

var knownEventTypes = map[string]bool{
	models.EventTransmit:       true,
	models.EventRejected:       true,
	models.EventTransmitFailed: true,
}

// IsFilterError reports whether err came from an invalid LogFilter.
func IsFilterError(err error) bool {
	return errors.Is(err, errInvalidTimeRange) ||
		errors.Is(err, errUnknownEventType) ||
		errors.Is(err, errInvalidLimit)
}

// toQuery validates f and converts it to a repository query in UTC.
func toQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{
		Type:    strings.ToUpper(strings.TrimSpace(f.Type)),
		Command: strings.TrimSpace(f.Command),
		Limit:   f.Limit,
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}

	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.EventQuery{}, errInvalidTimeRange
	}
	if q.Type != "" && !knownEventTypes[q.Type] {
		return repository.EventQuery{}, fmt.Errorf("%w: %q", errUnknownEventType, f.Type)
	}
	switch {
	case q.Limit == 0:
		q.Limit = DefaultLogLimit
	case q.Limit < 0 || q.Limit > MaxLogLimit:
		return repository.EventQuery{}, fmt.Errorf("%w: got %d", errInvalidLimit, f.Limit)
	}
	return q, nil
}

// List returns matching events, newest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.TransmissionEvent, error) {
	q, err := toQuery(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
