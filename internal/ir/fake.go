package ir

import (
	"context"
	"sync"

	"ir_climate/internal/models"
)

// FakeTransmitter records transmitted states for test assertions.
type FakeTransmitter struct {
	mu sync.Mutex

	// Sent contains every state that was transmitted successfully.
	Sent []models.ApplianceState

	// Err, if set, is returned by Transmit and nothing is recorded.
	Err error
}

func NewFakeTransmitter() *FakeTransmitter {
	return &FakeTransmitter{}
}

func (f *FakeTransmitter) Transmit(ctx context.Context, s models.ApplianceState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, s)
	return nil
}

// Count returns how many states were sent.
func (f *FakeTransmitter) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}

func (f *FakeTransmitter) Close() error { return nil }
