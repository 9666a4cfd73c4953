package models

import "time"

// RemoteStatus is a point-in-time view of the remote: held state plus busy indicator.
type RemoteStatus struct {
	State          ApplianceState `json:"state"`
	IndicatorArmed bool           `json:"indicator_armed"`
	IndicatorUntil *time.Time     `json:"indicator_until,omitempty"`
}

// ClimateReading is one ambient sample from the room sensor.
type ClimateReading struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %RH
}
