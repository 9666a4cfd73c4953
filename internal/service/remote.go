package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
	"ir_climate/internal/mqtt"
	"ir_climate/internal/remote"
	"ir_climate/internal/repository"
)

type RemoteService struct {
	translator *remote.Translator
	controller *remote.Controller
	eventRepo  repository.EventRepo
	publisher  mqtt.Publisher
	log        *logger.Logger
	now        func() time.Time

	// pubMu serializes PublishState; published is the Seq of the last
	// snapshot handed to the broker.
	pubMu     sync.Mutex
	published uint64
}

func NewRemoteService(tr *remote.Translator, c *remote.Controller, eventRepo repository.EventRepo, pub mqtt.Publisher, log *logger.Logger) *RemoteService {
	if pub == nil {
		pub = mqtt.Disabled{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RemoteService{
		translator: tr,
		controller: c,
		eventRepo:  eventRepo,
		publisher:  pub,
		log:        log,
		now:        time.Now,
	}
}

// Send validates and transmits one command. Every outcome is written to the
// audit log; audit and publish failures never change the result.
func (s *RemoteService) Send(ctx context.Context, command, value string) (string, error) {
	m, err := s.translator.Translate(command, value)
	if err != nil {
		s.log.Warnw("remote_command_rejected", "command", command, "value", value, "err", err)
		s.record(ctx, models.EventRejected, command, value, err.Error(), nil)
		return "", err
	}

	commit, err := s.controller.Apply(ctx, m)
	if err != nil {
		s.log.Errorw("remote_transmit_failed", "command", command, "value", value, "err", err)
		s.record(ctx, models.EventTransmitFailed, command, value, err.Error(), nil)
		return "", err
	}

	s.log.Infow("remote_command_applied", "command", command, "value", value,
		"confirmation", commit.Confirmation, "seq", commit.Seq)
	s.record(ctx, models.EventTransmit, command, value, commit.Confirmation, commit.State)
	s.publishState(commit)
	return commit.Confirmation, nil
}

// publishState sends c.State unless a later commit was already published, so
// the retained state topic never moves backwards.
func (s *RemoteService) publishState(c remote.Commit) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if c.Seq <= s.published {
		s.log.Debugw("mqtt_state_publish_skipped", "seq", c.Seq, "published", s.published)
		return
	}
	if err := s.publisher.PublishState(c.State); err != nil {
		s.log.Warnw("mqtt_state_publish_failed", "seq", c.Seq, "err", err)
		return
	}
	s.published = c.Seq
}

func (s *RemoteService) record(ctx context.Context, typ, command, value, description string, meta any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.TransmissionEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Command:     command,
		Value:       value,
		Description: description,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Errorw("audit_append_failed", "type", typ, "err", err)
	}
}

// IsValidationError reports whether err came from command validation rather
// than from the transmitter.
func IsValidationError(err error) bool {
	return errors.Is(err, remote.ErrUnknownCommand) || errors.Is(err, remote.ErrInvalidValue)
}
