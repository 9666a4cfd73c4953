package mqtt

import (
	"sync"

	"ir_climate/internal/models"
)

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	Announcements []Announcement
	States        []models.ApplianceState

	// Payloads maps topic to the JSON payloads published on it.
	Payloads map[string][][]byte

	// PublishError, if set, is returned by Announce and PublishState.
	PublishError error

	Closed    bool
	Connected bool

	topics Topics
}

func NewFakePublisher(prefix string) *FakePublisher {
	return &FakePublisher{
		Payloads: make(map[string][][]byte),
		topics:   NewTopics(prefix),
	}
}

func (f *FakePublisher) Announce(a Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatAnnouncement(a)
	if err != nil {
		return err
	}
	f.Announcements = append(f.Announcements, a)
	f.Payloads[f.topics.Announce] = append(f.Payloads[f.topics.Announce], payload)
	return nil
}

func (f *FakePublisher) PublishState(s models.ApplianceState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatState(s)
	if err != nil {
		return err
	}
	f.States = append(f.States, s)
	f.Payloads[f.topics.State] = append(f.Payloads[f.topics.State], payload)
	return nil
}

// StateCount returns how many states were published.
func (f *FakePublisher) StateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.States)
}

// LastState returns the most recently published state.
func (f *FakePublisher) LastState() (models.ApplianceState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.States) == 0 {
		return models.ApplianceState{}, false
	}
	return f.States[len(f.States)-1], true
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

func (f *FakePublisher) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Connected
}
