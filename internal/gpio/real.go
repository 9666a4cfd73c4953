//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// LED is an output line on a gpiochip. Levels are logical: with activeLow the
// LED is lit by driving the pin low, as on the ESP8266 built-in LED.
type LED struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewLED opens the chip and requests pin as an output, initially off.
func NewLED(chipName string, pin int, activeLow bool) (*LED, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", chipName, err)
	}

	opts := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	line, err := chip.RequestLine(pin, opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request led pin %d: %w", pin, err)
	}
	return &LED{chip: chip, line: line}, nil
}

func (l *LED) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := l.line.SetValue(v); err != nil {
		return fmt.Errorf("set led: %w", err)
	}
	return nil
}

// Close turns the LED off and releases the line and chip.
func (l *LED) Close() error {
	var errs []error
	if err := l.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("clear led: %w", err))
	}
	if err := l.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close led line: %w", err))
	}
	if err := l.chip.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close chip: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
