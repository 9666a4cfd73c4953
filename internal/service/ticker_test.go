package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"ir_climate/internal/gpio"
	"ir_climate/internal/ir"
	"ir_climate/internal/models"
	"ir_climate/internal/remote"
)

func TestTickerService_ClearsIndicatorAfterTimeout(t *testing.T) {
	led := gpio.NewFakeOutput()
	var clock atomic.Int64
	ctrl := remote.NewController(models.DefaultApplianceState(), remote.ControllerDeps{
		Transmitter: ir.NewFakeTransmitter(),
		Busy:        led,
		Timeout:     time.Second,
		Now:         func() time.Time { return time.Unix(0, clock.Load()) },
	})

	m, err := remote.NewTranslator(remote.DefaultTempRange).Translate("temp", "20")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.Apply(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if !led.Level() {
		t.Fatalf("expected LED lit after transmission")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewTickerService(ctrl).Run(ctx, time.Millisecond)
		close(done)
	}()

	// still inside the timeout window
	time.Sleep(20 * time.Millisecond)
	if !led.Level() {
		t.Fatalf("LED cleared before timeout")
	}

	clock.Store(int64(time.Second))
	deadline := time.Now().Add(2 * time.Second)
	for led.Level() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if led.Level() {
		t.Fatalf("LED not cleared after timeout")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("ticker did not stop on context cancellation")
	}
}
