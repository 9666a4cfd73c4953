package models

import "time"

// Event types recorded for every /send_ir request that reaches the translator.
const (
	EventTransmit       = "TRANSMIT"
	EventRejected       = "REJECTED"
	EventTransmitFailed = "TRANSMIT_FAILED"
)

// TransmissionEvent is a single audit log entry.
type TransmissionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // TRANSMIT | REJECTED | TRANSMIT_FAILED
	Command     string    `json:"command"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
