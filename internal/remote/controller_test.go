package remote

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"ir_climate/internal/models"
)

// ---- Test doubles ----

type recordingTransmitter struct {
	sent []models.ApplianceState
	err  error
}

func (r *recordingTransmitter) Transmit(ctx context.Context, s models.ApplianceState) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, s)
	return nil
}

type recordingBusy struct {
	writes []bool
	err    error
}

func (b *recordingBusy) Set(on bool) error {
	b.writes = append(b.writes, on)
	return b.err
}

func (b *recordingBusy) last() (bool, bool) {
	if len(b.writes) == 0 {
		return false, false
	}
	return b.writes[len(b.writes)-1], true
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestController(tx *recordingTransmitter, busy *recordingBusy, clk *fakeClock) *Controller {
	return NewController(models.DefaultApplianceState(), ControllerDeps{
		Transmitter: tx,
		Busy:        busy,
		Timeout:     time.Second,
		Now:         clk.Now,
	})
}

func mustTranslate(t *testing.T, command, value string) Mutation {
	t.Helper()
	m, err := NewTranslator(DefaultTempRange).Translate(command, value)
	if err != nil {
		t.Fatalf("translate %s=%s: %v", command, value, err)
	}
	return m
}

// ---- Tests ----

func TestController_ApplyModeRoundTrip(t *testing.T) {
	tx := &recordingTransmitter{}
	busy := &recordingBusy{}
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestController(tx, busy, clk)

	commit, err := c.Apply(context.Background(), mustTranslate(t, "mode", "cool"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if commit.Confirmation != "Mode: cool" {
		t.Fatalf("confirmation: got %q", commit.Confirmation)
	}
	if commit.State != c.State() || commit.Seq != 1 {
		t.Fatalf("commit %+v does not match held state %+v", commit, c.State())
	}
	if got := c.State().Mode; got != models.ModeCool {
		t.Fatalf("expected mode cool, got %v", got)
	}
	if len(tx.sent) != 1 {
		t.Fatalf("expected one transmission, got %d", len(tx.sent))
	}
	// full snapshot, not a diff
	want := models.DefaultApplianceState()
	want.Mode = models.ModeCool
	if tx.sent[0] != want {
		t.Fatalf("transmitted %+v, want %+v", tx.sent[0], want)
	}
	if on, ok := busy.last(); !ok || !on {
		t.Fatalf("expected busy signal on, writes=%v", busy.writes)
	}
	if !c.IndicatorArmed() {
		t.Fatalf("expected indicator armed")
	}
}

func TestController_TemperatureScenario(t *testing.T) {
	tx := &recordingTransmitter{}
	c := newTestController(tx, &recordingBusy{}, &fakeClock{t: time.Unix(0, 0)})

	commit, err := c.Apply(context.Background(), mustTranslate(t, "temp", "22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if commit.Confirmation != "Temperature = 22" {
		t.Fatalf("confirmation: got %q", commit.Confirmation)
	}
	if c.State().Temperature != 22 {
		t.Fatalf("temperature not applied: %+v", c.State())
	}
}

func TestController_IdempotentApplyRearms(t *testing.T) {
	tx := &recordingTransmitter{}
	busy := &recordingBusy{}
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := newTestController(tx, busy, clk)
	m := mustTranslate(t, "fan", "low")

	if _, err := c.Apply(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	first := c.State()

	clk.Advance(600 * time.Millisecond)
	if _, err := c.Apply(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if c.State() != first {
		t.Fatalf("state changed on repeat: %+v vs %+v", c.State(), first)
	}
	if len(tx.sent) != 2 {
		t.Fatalf("expected both applies to transmit, got %d", len(tx.sent))
	}

	// deadline is second arm + 1s, not first arm + 2s
	clk.Advance(999 * time.Millisecond)
	c.Tick()
	if !c.IndicatorArmed() {
		t.Fatalf("expected armed before re-armed deadline")
	}
	clk.Advance(time.Millisecond)
	c.Tick()
	if c.IndicatorArmed() {
		t.Fatalf("expected idle at re-armed deadline")
	}
	if on, _ := busy.last(); on {
		t.Fatalf("expected busy signal cleared, writes=%v", busy.writes)
	}
}

func TestController_TickClearsOnlyAfterTimeout(t *testing.T) {
	busy := &recordingBusy{}
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := newTestController(&recordingTransmitter{}, busy, clk)

	c.Tick()
	if len(busy.writes) != 0 {
		t.Fatalf("tick on idle indicator must not touch the signal, writes=%v", busy.writes)
	}

	if _, err := c.Apply(context.Background(), mustTranslate(t, "on", "")); err != nil {
		t.Fatal(err)
	}
	clk.Advance(500 * time.Millisecond)
	c.Tick()
	if on, _ := busy.last(); !on {
		t.Fatalf("cleared too early, writes=%v", busy.writes)
	}

	clk.Advance(500 * time.Millisecond)
	c.Tick()
	if on, _ := busy.last(); on {
		t.Fatalf("expected clear at deadline, writes=%v", busy.writes)
	}
	n := len(busy.writes)
	c.Tick()
	if len(busy.writes) != n {
		t.Fatalf("idle tick must not rewrite the signal")
	}
}

func TestController_TransmitFailureLeavesStateAndIndicator(t *testing.T) {
	tx := &recordingTransmitter{err: errors.New("no ack")}
	busy := &recordingBusy{}
	c := newTestController(tx, busy, &fakeClock{t: time.Unix(0, 0)})
	before := c.State()

	_, err := c.Apply(context.Background(), mustTranslate(t, "swing_mode", "both"))
	if !errors.Is(err, ErrTransmitFailure) {
		t.Fatalf("expected ErrTransmitFailure, got %v", err)
	}
	if c.State() != before {
		t.Fatalf("state must be unchanged after failed transmit")
	}
	if c.IndicatorArmed() || len(busy.writes) != 0 {
		t.Fatalf("indicator must not arm on failure, writes=%v", busy.writes)
	}

	tx.err = nil
	commit, err := c.Apply(context.Background(), mustTranslate(t, "swing_mode", "both"))
	if err != nil {
		t.Fatal(err)
	}
	if commit.Seq != 1 {
		t.Fatalf("failed transmissions must not advance the sequence, got %d", commit.Seq)
	}
}

func TestController_BusySignalErrorIsNotFatal(t *testing.T) {
	busy := &recordingBusy{err: errors.New("gpio gone")}
	c := newTestController(&recordingTransmitter{}, busy, &fakeClock{t: time.Unix(0, 0)})

	if _, err := c.Apply(context.Background(), mustTranslate(t, "off", "")); err != nil {
		t.Fatalf("busy signal failure must not fail the command: %v", err)
	}
	if !c.IndicatorArmed() {
		t.Fatalf("indicator state is independent of the physical signal")
	}
}

func TestController_StatusSnapshot(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	c := newTestController(&recordingTransmitter{}, &recordingBusy{}, clk)

	st := c.Status()
	if st.IndicatorArmed || st.IndicatorUntil != nil {
		t.Fatalf("expected idle status, got %+v", st)
	}

	if _, err := c.Apply(context.Background(), mustTranslate(t, "temp", "18")); err != nil {
		t.Fatal(err)
	}
	st = c.Status()
	if !st.IndicatorArmed || st.IndicatorUntil == nil || !st.IndicatorUntil.Equal(clk.t.Add(time.Second)) {
		t.Fatalf("unexpected armed status: %+v", st)
	}
	if st.State.Temperature != 18 {
		t.Fatalf("status state mismatch: %+v", st.State)
	}

	clk.Advance(time.Second)
	if c.Status().IndicatorArmed {
		t.Fatalf("status must evaluate the deadline lazily")
	}
}

type lockedTransmitter struct {
	mu   sync.Mutex
	sent []models.ApplianceState
}

func (l *lockedTransmitter) Transmit(ctx context.Context, s models.ApplianceState) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, s)
	return nil
}

func TestController_ConcurrentCommitsCarryTheirOwnState(t *testing.T) {
	tx := &lockedTransmitter{}
	c := NewController(models.DefaultApplianceState(), ControllerDeps{Transmitter: tx, Timeout: time.Second})
	tr := NewTranslator(DefaultTempRange)

	const perWorker = 500
	values := []string{"11", "29"}
	commits := make([][]Commit, len(values))

	var wg sync.WaitGroup
	for w, v := range values {
		wg.Add(1)
		go func(w int, v string) {
			defer wg.Done()
			m, err := tr.Translate("temp", v)
			if err != nil {
				t.Error(err)
				return
			}
			for i := 0; i < perWorker; i++ {
				commit, err := c.Apply(context.Background(), m)
				if err != nil {
					t.Error(err)
					return
				}
				commits[w] = append(commits[w], commit)
			}
		}(w, v)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for w, v := range values {
		for _, commit := range commits[w] {
			if strconv.Itoa(commit.State.Temperature) != v {
				t.Fatalf("commit for temp=%s carries temperature %d", v, commit.State.Temperature)
			}
			if seen[commit.Seq] {
				t.Fatalf("duplicate sequence %d", commit.Seq)
			}
			seen[commit.Seq] = true
		}
	}
	if len(seen) != len(values)*perWorker {
		t.Fatalf("expected %d distinct commits, got %d", len(values)*perWorker, len(seen))
	}
}
