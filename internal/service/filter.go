package service

import "time"

// Listing bounds for the audit log.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

// LogFilter selects audit events. Zero values do not constrain, except Limit
// which falls back to DefaultLogLimit.
type LogFilter struct {
	From    time.Time // inclusive
	To      time.Time // inclusive
	Type    string    // "", "TRANSMIT", "REJECTED", "TRANSMIT_FAILED"
	Command string    // raw command name as received on /send_ir
	Limit   int
}
