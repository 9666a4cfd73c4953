package remote

import (
	"fmt"
	"strconv"

	"ir_climate/internal/models"
)

// External command names accepted on /send_ir.
const (
	CommandTemp  = "temp"
	CommandMode  = "mode"
	CommandFan   = "fan"
	CommandOn    = "on"
	CommandOff   = "off"
	CommandSwing = "swing_mode"
)

// Field identifies which part of the appliance state a mutation touches.
type Field uint8

const (
	FieldTemperature Field = iota + 1
	FieldMode
	FieldFan
	FieldPower
	FieldSwing
)

// Mutation is a validated single-field change. Label keeps the caller's original
// value string for the confirmation text.
type Mutation struct {
	Field       Field
	Power       bool
	Mode        models.Mode
	Fan         models.FanSpeed
	Swing       models.Swing
	Temperature int
	Label       string
}

// ApplyTo returns s with the mutated field replaced.
func (m Mutation) ApplyTo(s models.ApplianceState) models.ApplianceState {
	switch m.Field {
	case FieldTemperature:
		s.Temperature = m.Temperature
	case FieldMode:
		s.Mode = m.Mode
	case FieldFan:
		s.FanSpeed = m.Fan
	case FieldPower:
		s.Power = m.Power
	case FieldSwing:
		s.Swing = m.Swing
	}
	return s
}

// Confirmation is the text returned to the HTTP caller. Existing clients match on it verbatim.
func (m Mutation) Confirmation() string {
	switch m.Field {
	case FieldTemperature:
		return "Temperature = " + m.Label
	case FieldMode:
		return "Mode: " + m.Label
	case FieldFan:
		return "Fan: " + m.Label
	case FieldPower:
		return "Power: " + m.Label
	case FieldSwing:
		return "Swing mode: " + m.Label
	}
	return ""
}

// TempRange is the inclusive set-point range supported by the appliance.
type TempRange struct {
	Min int
	Max int
}

// DefaultTempRange is the documented range of the target unit.
var DefaultTempRange = TempRange{Min: 10, Max: 30}

func (r TempRange) contains(v int) bool { return v >= r.Min && v <= r.Max }

var (
	modeValues = map[string]models.Mode{
		"heat":      models.ModeHeat,
		"cool":      models.ModeCool,
		"heat_cool": models.ModeAuto,
		"dry":       models.ModeDry,
		"fan_only":  models.ModeFan,
	}
	fanValues = map[string]models.FanSpeed{
		"auto":   models.FanAuto,
		"low":    models.FanLow,
		"medium": models.FanMedium,
		"high":   models.FanHigh,
	}
	swingValues = map[string]models.Swing{
		"off":        models.SwingOff,
		"both":       models.SwingBoth,
		"vertical":   models.SwingVertical,
		"horizontal": models.SwingHorizontal,
	}
)

// Translator maps external (command, value) string pairs onto Mutations.
// It has no side effects.
type Translator struct {
	tempRange TempRange
}

func NewTranslator(r TempRange) *Translator {
	return &Translator{tempRange: r}
}

// Translate validates one command. Errors are *ValidationError wrapping
// ErrUnknownCommand or ErrInvalidValue.
func (t *Translator) Translate(command, value string) (Mutation, error) {
	switch command {
	case CommandTemp:
		v, err := strconv.Atoi(value)
		if err != nil {
			return Mutation{}, invalidValue(command, value, "not an integer")
		}
		if !t.tempRange.contains(v) {
			return Mutation{}, invalidValue(command, value,
				fmt.Sprintf("outside %d..%d", t.tempRange.Min, t.tempRange.Max))
		}
		return Mutation{Field: FieldTemperature, Temperature: v, Label: value}, nil

	case CommandMode:
		m, ok := modeValues[value]
		if !ok {
			return Mutation{}, invalidValue(command, value, "unsupported mode")
		}
		return Mutation{Field: FieldMode, Mode: m, Label: value}, nil

	case CommandFan:
		f, ok := fanValues[value]
		if !ok {
			return Mutation{}, invalidValue(command, value, "unsupported fan speed")
		}
		return Mutation{Field: FieldFan, Fan: f, Label: value}, nil

	case CommandOn:
		return Mutation{Field: FieldPower, Power: true, Label: "on"}, nil

	case CommandOff:
		return Mutation{Field: FieldPower, Power: false, Label: "off"}, nil

	case CommandSwing:
		s, ok := swingValues[value]
		if !ok {
			return Mutation{}, invalidValue(command, value, "unsupported swing mode")
		}
		return Mutation{Field: FieldSwing, Swing: s, Label: value}, nil
	}
	return Mutation{}, unknownCommand(command, value)
}
