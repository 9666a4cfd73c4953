package remote

import (
	"errors"
	"fmt"
)

// Error taxonomy for /send_ir. All three are recovered at the request boundary.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidValue    = errors.New("invalid value")
	ErrTransmitFailure = errors.New("transmit failed")
)

// ValidationError describes a rejected command. It unwraps to ErrUnknownCommand or ErrInvalidValue.
type ValidationError struct {
	Command string
	Value   string
	Reason  string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: command=%q value=%q", e.Err, e.Command, e.Value)
	}
	return fmt.Sprintf("%v: command=%q value=%q: %s", e.Err, e.Command, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func unknownCommand(command, value string) error {
	return &ValidationError{Command: command, Value: value, Err: ErrUnknownCommand}
}

func invalidValue(command, value, reason string) error {
	return &ValidationError{Command: command, Value: value, Reason: reason, Err: ErrInvalidValue}
}
