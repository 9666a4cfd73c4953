package service

import (
	"context"
	"time"

	"ir_climate/internal/remote"
)

// TickerService drives the controller's indicator timeout.
type TickerService struct {
	controller *remote.Controller
}

func NewTickerService(c *remote.Controller) *TickerService {
	return &TickerService{controller: c}
}

// Run ticks at the given interval until ctx is canceled.
func (s *TickerService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.controller.Tick()
		}
	}
}
