package models

import "fmt"

// Mode is the air-conditioner operating mode. The zero value is not a valid mode.
type Mode uint8

const (
	ModeUnknown Mode = iota
	ModeHeat
	ModeCool
	ModeAuto
	ModeDry
	ModeFan
)

// FanSpeed is the indoor fan setting. The zero value is not a valid speed.
type FanSpeed uint8

const (
	FanUnknown FanSpeed = iota
	FanAuto
	FanHigh
	FanLow
	FanMedium
	FanQuiet
)

// Swing is the louver swing setting. The zero value is not a valid setting.
type Swing uint8

const (
	SwingUnknown Swing = iota
	SwingOff
	SwingVertical
	SwingHorizontal
	SwingBoth
)

var modeNames = map[Mode]string{
	ModeHeat: "heat",
	ModeCool: "cool",
	ModeAuto: "auto",
	ModeDry:  "dry",
	ModeFan:  "fan",
}

var fanNames = map[FanSpeed]string{
	FanAuto:   "auto",
	FanHigh:   "high",
	FanLow:    "low",
	FanMedium: "medium",
	FanQuiet:  "quiet",
}

var swingNames = map[Swing]string{
	SwingOff:        "off",
	SwingVertical:   "vertical",
	SwingHorizontal: "horizontal",
	SwingBoth:       "both",
}

// IR protocol code points (Fujitsu AC family).
var (
	modeCodes  = map[Mode]uint8{ModeAuto: 0, ModeCool: 1, ModeDry: 2, ModeFan: 3, ModeHeat: 4}
	fanCodes   = map[FanSpeed]uint8{FanAuto: 0, FanHigh: 1, FanMedium: 2, FanLow: 3, FanQuiet: 4}
	swingCodes = map[Swing]uint8{SwingOff: 0, SwingVertical: 1, SwingHorizontal: 2, SwingBoth: 3}
)

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Code returns the IR protocol value for m.
func (m Mode) Code() uint8 { return modeCodes[m] }

// MarshalText lets the enum render as its name in JSON.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (f FanSpeed) String() string {
	if s, ok := fanNames[f]; ok {
		return s
	}
	return "unknown"
}

func (f FanSpeed) Valid() bool {
	_, ok := fanNames[f]
	return ok
}

func (f FanSpeed) Code() uint8 { return fanCodes[f] }

func (f FanSpeed) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (s Swing) String() string {
	if n, ok := swingNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Swing) Valid() bool {
	_, ok := swingNames[s]
	return ok
}

func (s Swing) Code() uint8 { return swingCodes[s] }

func (s Swing) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ApplianceState is the full command-state sent with every IR transmission.
type ApplianceState struct {
	Power       bool     `json:"power"`
	Mode        Mode     `json:"mode"`
	FanSpeed    FanSpeed `json:"fan_speed"`
	Temperature int      `json:"temperature"` // °C
	Swing       Swing    `json:"swing"`
}

// DefaultApplianceState is the state assumed at process start.
func DefaultApplianceState() ApplianceState {
	return ApplianceState{
		Power:       false,
		Mode:        ModeHeat,
		FanSpeed:    FanHigh,
		Temperature: 24,
		Swing:       SwingOff,
	}
}

func (m *Mode) UnmarshalText(b []byte) error {
	for k, v := range modeNames {
		if v == string(b) {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", b)
}

func (f *FanSpeed) UnmarshalText(b []byte) error {
	for k, v := range fanNames {
		if v == string(b) {
			*f = k
			return nil
		}
	}
	return fmt.Errorf("unknown fan speed %q", b)
}

func (s *Swing) UnmarshalText(b []byte) error {
	for k, v := range swingNames {
		if v == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown swing %q", b)
}
