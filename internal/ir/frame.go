// Package ir encodes appliance state into emitter frames and sends them to a
// serial-attached IR emitter, which performs the carrier modulation.
package ir

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/elliotchance/orderedmap"
	"github.com/npat-efault/crc16"

	"ir_climate/internal/models"
)

// Frame layout: 0x55 0x55 | length (u16 BE) | payload | crc16 (u16 BE).
// The CRC covers length and payload.
const (
	headerByte = 0x55
	headerLen  = 2
	lengthLen  = 2
	crcLen     = 2

	// AckByte is the emitter's reply once the signal has been sent.
	AckByte = 0x06
)

// Field names in the packed payload.
const (
	FieldPower       = "Power"
	FieldMode        = "Mode"
	FieldFanSpeed    = "FanSpeed"
	FieldSwing       = "Swing"
	FieldTemperature = "Temperature"
)

var crcConf = &crc16.Conf{
	Poly: 0x8005, BitRev: true,
	IniVal: 0xffff, FinVal: 0x0,
	BigEnd: false,
}

var (
	errShortFrame = errors.New("ir: frame too short")
	errBadHeader  = errors.New("ir: bad frame header")
	errBadLength  = errors.New("ir: frame length mismatch")
	errBadCRC     = errors.New("ir: frame crc mismatch")
)

// payloadLayout maps each field to its bit width, most significant first.
func payloadLayout() *orderedmap.OrderedMap {
	m := orderedmap.NewOrderedMap()
	m.Set(FieldPower, 1)
	m.Set(FieldMode, 3)
	m.Set(FieldFanSpeed, 3)
	m.Set(FieldSwing, 2)
	m.Set(FieldTemperature, 7)
	return m
}

func layoutBits(layout *orderedmap.OrderedMap) int {
	total := 0
	for _, k := range layout.Keys() {
		w, _ := layout.Get(k)
		total += w.(int)
	}
	return total
}

func fieldValues(s models.ApplianceState) (map[string]uint64, error) {
	if !s.Mode.Valid() || !s.FanSpeed.Valid() || !s.Swing.Valid() {
		return nil, fmt.Errorf("ir: state has unset fields: %+v", s)
	}
	if s.Temperature < 0 {
		return nil, fmt.Errorf("ir: temperature %d cannot be encoded", s.Temperature)
	}
	power := uint64(0)
	if s.Power {
		power = 1
	}
	return map[string]uint64{
		FieldPower:       power,
		FieldMode:        uint64(s.Mode.Code()),
		FieldFanSpeed:    uint64(s.FanSpeed.Code()),
		FieldSwing:       uint64(s.Swing.Code()),
		FieldTemperature: uint64(s.Temperature),
	}, nil
}

// EncodeFrame packs the complete state into one emitter frame.
func EncodeFrame(s models.ApplianceState) ([]byte, error) {
	values, err := fieldValues(s)
	if err != nil {
		return nil, err
	}

	layout := payloadLayout()
	var bits uint64
	for _, k := range layout.Keys() {
		name := k.(string)
		w, _ := layout.Get(k)
		width := w.(int)
		v := values[name]
		if v >= 1<<uint(width) {
			return nil, fmt.Errorf("ir: %s value %d does not fit in %d bits", name, v, width)
		}
		bits = bits<<uint(width) | v
	}

	total := layoutBits(layout)
	size := (total + 7) / 8
	bits <<= uint(size*8 - total)

	payload := make([]byte, size)
	for i := size - 1; i >= 0; i-- {
		payload[i] = byte(bits)
		bits >>= 8
	}

	frame := make([]byte, 0, headerLen+lengthLen+size+crcLen)
	frame = append(frame, headerByte, headerByte)
	frame = binary.BigEndian.AppendUint16(frame, uint16(size))
	frame = append(frame, payload...)
	frame = binary.BigEndian.AppendUint16(frame, crc16.Checksum(crcConf, frame[headerLen:]))
	return frame, nil
}

// DecodeFields verifies a frame and returns the raw field values.
func DecodeFields(frame []byte) (map[string]uint64, error) {
	if len(frame) < headerLen+lengthLen+crcLen {
		return nil, errShortFrame
	}
	if frame[0] != headerByte || frame[1] != headerByte {
		return nil, errBadHeader
	}
	size := int(binary.BigEndian.Uint16(frame[headerLen:]))
	if len(frame) != headerLen+lengthLen+size+crcLen {
		return nil, errBadLength
	}
	body := frame[headerLen : len(frame)-crcLen]
	if crc16.Checksum(crcConf, body) != binary.BigEndian.Uint16(frame[len(frame)-crcLen:]) {
		return nil, errBadCRC
	}

	var bits uint64
	for _, b := range body[lengthLen:] {
		bits = bits<<8 | uint64(b)
	}
	layout := payloadLayout()
	bits >>= uint(size*8 - layoutBits(layout))

	keys := layout.Keys()
	out := make(map[string]uint64, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		w, _ := layout.Get(keys[i])
		width := uint(w.(int))
		out[keys[i].(string)] = bits & (1<<width - 1)
		bits >>= width
	}
	return out, nil
}
