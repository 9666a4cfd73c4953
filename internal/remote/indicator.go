package remote

import "time"

// Indicator is the transmit busy flag. It is a deadline evaluated lazily against
// the caller's clock: armed on [arm, arm+timeout), idle from arm+timeout on.
// Re-arming moves the deadline. Not safe for concurrent use.
type Indicator struct {
	timeout  time.Duration
	armed    bool
	deadline time.Time
}

func NewIndicator(timeout time.Duration) *Indicator {
	return &Indicator{timeout: timeout}
}

// Arm starts or restarts the timeout from now.
func (i *Indicator) Arm(now time.Time) {
	i.armed = true
	i.deadline = now.Add(i.timeout)
}

// ArmedAt reports whether the indicator is armed at the given instant.
func (i *Indicator) ArmedAt(now time.Time) bool {
	return i.armed && now.Before(i.deadline)
}

// Expire disarms the indicator if its deadline has passed and reports whether
// that transition happened on this call.
func (i *Indicator) Expire(now time.Time) bool {
	if !i.armed || now.Before(i.deadline) {
		return false
	}
	i.armed = false
	return true
}

// Deadline returns the current deadline while armed.
func (i *Indicator) Deadline() (time.Time, bool) {
	return i.deadline, i.armed
}
