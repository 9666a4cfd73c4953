package gpio

import "sync"

// FakeOutput records levels written to it.
type FakeOutput struct {
	mu sync.Mutex

	// Writes holds every level passed to Set, in order.
	Writes []bool

	// SetError, if set, is returned by Set after recording the write.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

func (f *FakeOutput) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, on)
	return f.SetError
}

// Level returns the last written level (false if never written).
func (f *FakeOutput) Level() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Writes) == 0 {
		return false
	}
	return f.Writes[len(f.Writes)-1]
}

func (f *FakeOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
