// Package mqtt announces the remote on a broker and publishes appliance state.
package mqtt

import (
	"encoding/json"

	"ir_climate/internal/models"
)

// DeviceType identifies this remote in announcements.
const DeviceType = "ir-climate"

// Publisher publishes to MQTT. Errors are reported but must never crash the
// process or fail a command.
type Publisher interface {
	// Announce publishes the retained device announcement.
	Announce(a Announcement) error

	// PublishState publishes the retained appliance state.
	PublishState(s models.ApplianceState) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Broker states reported on /health.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusDisabled     = "disabled"
)

// Status describes p's broker link. Publishers without a connection, such as
// Disabled, report StatusDisabled.
func Status(p Publisher) string {
	cs, ok := p.(ConnectionStatus)
	if !ok {
		return StatusDisabled
	}
	if cs.IsConnected() {
		return StatusConnected
	}
	return StatusDisconnected
}

// Announcement advertises the remote's HTTP endpoint.
type Announcement struct {
	Device     string `json:"device"`
	Name       string `json:"name"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	MACAddress string `json:"mac_address,omitempty"`
}

// Topics derives the topic names from a prefix.
type Topics struct {
	Announce string
	State    string
}

func NewTopics(prefix string) Topics {
	return Topics{
		Announce: prefix + "/announce",
		State:    prefix + "/state",
	}
}

// FormatAnnouncement creates the JSON payload for an announcement.
func FormatAnnouncement(a Announcement) ([]byte, error) {
	if a.Device == "" {
		a.Device = DeviceType
	}
	return json.Marshal(a)
}

// FormatState creates the JSON payload for an appliance state.
func FormatState(s models.ApplianceState) ([]byte, error) {
	return json.Marshal(s)
}

// Disabled is used when no broker is configured.
type Disabled struct{}

func (Disabled) Announce(Announcement) error               { return nil }
func (Disabled) PublishState(models.ApplianceState) error { return nil }
func (Disabled) Close() error                             { return nil }
