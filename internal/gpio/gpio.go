// Package gpio drives the transmit busy LED.
// The real implementation uses the Linux GPIO character device.
package gpio

// Output is a single digital output line.
type Output interface {
	// Set drives the line to the logical level (true = LED lit).
	Set(on bool) error

	// Close releases the line.
	Close() error
}

// Noop is used when no LED is wired.
type Noop struct{}

func (Noop) Set(bool) error { return nil }
func (Noop) Close() error   { return nil }
