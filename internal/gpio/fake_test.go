package gpio

import (
	"errors"
	"testing"
)

func TestFakeOutputRecordsWrites(t *testing.T) {
	f := NewFakeOutput()
	if f.Level() {
		t.Fatalf("expected low before any write")
	}
	_ = f.Set(true)
	_ = f.Set(false)
	_ = f.Set(true)
	if len(f.Writes) != 3 || !f.Level() {
		t.Fatalf("unexpected writes: %v", f.Writes)
	}
}

func TestFakeOutputError(t *testing.T) {
	f := NewFakeOutput()
	f.SetError = errors.New("simulated error")
	if err := f.Set(true); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.Writes) != 1 {
		t.Fatalf("write should still be recorded")
	}
}

func TestFakeOutputClose(t *testing.T) {
	f := NewFakeOutput()
	if err := f.Close(); err != nil || !f.Closed {
		t.Fatalf("expected closed, err=%v", err)
	}
}

func TestNoop(t *testing.T) {
	var o Output = Noop{}
	if err := o.Set(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
