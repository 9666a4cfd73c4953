//go:build !linux

package gpio

import "errors"

// LED is not available on non-Linux platforms.
type LED struct{}

// NewLED returns an error on non-Linux platforms.
func NewLED(chip string, pin int, activeLow bool) (*LED, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (l *LED) Set(bool) error {
	return errors.New("gpio: not supported")
}

func (l *LED) Close() error {
	return nil
}
