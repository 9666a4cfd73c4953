package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
)

// Transmitter emits the complete appliance state as an IR signal.
type Transmitter interface {
	Transmit(ctx context.Context, s models.ApplianceState) error
}

// BusySignal drives the physical "transmission in progress" output.
type BusySignal interface {
	Set(on bool) error
}

// ControllerDeps are the collaborators of a Controller.
type ControllerDeps struct {
	Transmitter Transmitter
	Busy        BusySignal
	Timeout     time.Duration    // indicator auto-clear delay
	Now         func() time.Time // defaults to time.Now
	Log         *logger.Logger   // optional
}

// Commit describes one successful transmission. Seq increases by one per
// commit, so consumers outside the lock can order snapshots.
type Commit struct {
	Confirmation string
	State        models.ApplianceState
	Seq          uint64
}

// Controller owns the appliance state and the busy indicator. Every method takes
// the same lock, so state mutation, transmission and ticks never interleave.
type Controller struct {
	mu        sync.Mutex
	state     models.ApplianceState
	indicator *Indicator
	tx        Transmitter
	busy      BusySignal
	now       func() time.Time
	log       *logger.Logger
	seq       uint64
}

func NewController(initial models.ApplianceState, deps ControllerDeps) *Controller {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		state:     initial,
		indicator: NewIndicator(deps.Timeout),
		tx:        deps.Transmitter,
		busy:      deps.Busy,
		now:       now,
		log:       deps.Log,
	}
}

// Apply transmits the state produced by m and, on success, commits it and arms
// the indicator. The returned Commit holds the state exactly as committed by
// this call. A failed transmission leaves both state and indicator untouched.
func (c *Controller) Apply(ctx context.Context, m Mutation) (Commit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := m.ApplyTo(c.state)
	if err := c.tx.Transmit(ctx, next); err != nil {
		return Commit{}, fmt.Errorf("%w: %v", ErrTransmitFailure, err)
	}
	c.state = next
	c.seq++

	c.indicator.Arm(c.now())
	c.setBusy(true)

	return Commit{Confirmation: m.Confirmation(), State: next, Seq: c.seq}, nil
}

// Tick clears the busy signal once the indicator timeout has elapsed.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indicator.Expire(c.now()) {
		c.setBusy(false)
	}
}

// State returns a copy of the held appliance state.
func (c *Controller) State() models.ApplianceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IndicatorArmed reports whether a transmission happened within the timeout.
func (c *Controller) IndicatorArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indicator.ArmedAt(c.now())
}

// Status returns state and indicator in one consistent snapshot.
func (c *Controller) Status() models.RemoteStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := models.RemoteStatus{State: c.state}
	if c.indicator.ArmedAt(c.now()) {
		deadline, _ := c.indicator.Deadline()
		st.IndicatorArmed = true
		st.IndicatorUntil = &deadline
	}
	return st
}

func (c *Controller) setBusy(on bool) {
	if c.busy == nil {
		return
	}
	if err := c.busy.Set(on); err != nil && c.log != nil {
		c.log.Errorw("busy_signal_write_failed", "err", err, "on", on)
	}
}
