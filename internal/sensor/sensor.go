// Package sensor reads ambient temperature and humidity from a Modbus device.
package sensor

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
)

const (
	// first input register; temperature at 1, humidity at 2, both scaled by 10
	firstRegister = 1
	registerCount = 2
)

var ErrNoSensor = errors.New("no sensor configured")

// Reader returns one climate reading.
type Reader interface {
	Read(ctx context.Context) (models.ClimateReading, error)
}

// registerReader is the part of modbus.Client used here.
type registerReader interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// ModbusSensor polls a temperature/humidity sensor over RTU or TCP.
type ModbusSensor struct {
	mu      sync.Mutex
	handler handler
	client  registerReader
	log     *logger.Logger
}

// RTUOptions configures a serial Modbus link.
type RTUOptions struct {
	Port    string
	Baud    int
	SlaveID byte
	Timeout time.Duration
}

// NewRTU builds a sensor on a serial port, 8N1. A nil log discards output.
func NewRTU(opts RTUOptions, log *logger.Logger) *ModbusSensor {
	if log == nil {
		log = logger.Nop()
	}
	h := modbus.NewRTUClientHandler(opts.Port)
	h.BaudRate = opts.Baud
	h.DataBits = 8
	h.Parity = "N"
	h.StopBits = 1
	h.SlaveId = opts.SlaveID
	h.Timeout = opts.Timeout
	return &ModbusSensor{handler: h, client: modbus.NewClient(h), log: log}
}

// NewTCP builds a sensor reachable at address (host:port).
func NewTCP(address string, slaveID byte, timeout time.Duration, log *logger.Logger) *ModbusSensor {
	if log == nil {
		log = logger.Nop()
	}
	h := modbus.NewTCPClientHandler(address)
	h.SlaveId = slaveID
	h.Timeout = timeout
	return &ModbusSensor{handler: h, client: modbus.NewClient(h), log: log}
}

// Connect opens the underlying link. Reads connect lazily too, so a failure
// here is not fatal.
func (s *ModbusSensor) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.Connect()
}

func (s *ModbusSensor) Read(ctx context.Context) (models.ClimateReading, error) {
	if err := ctx.Err(); err != nil {
		return models.ClimateReading{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.client.ReadInputRegisters(firstRegister, registerCount)
	if err != nil {
		return models.ClimateReading{}, fmt.Errorf("read input registers: %w", err)
	}
	reading, err := decodeRegisters(raw)
	if err != nil {
		return models.ClimateReading{}, err
	}
	s.log.Debugw("sensor_read", "temperature", reading.Temperature, "humidity", reading.Humidity)
	return reading, nil
}

func (s *ModbusSensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.Close()
}

// decodeRegisters converts two big-endian registers into a reading.
// Temperature is signed, humidity unsigned.
func decodeRegisters(raw []byte) (models.ClimateReading, error) {
	if len(raw) != registerCount*2 {
		return models.ClimateReading{}, fmt.Errorf("expected %d bytes, got %d", registerCount*2, len(raw))
	}
	temp := int16(binary.BigEndian.Uint16(raw[0:2]))
	hum := binary.BigEndian.Uint16(raw[2:4])
	return models.ClimateReading{
		Temperature: float64(temp) / 10,
		Humidity:    float64(hum) / 10,
	}, nil
}

// Disabled is used when no sensor is configured.
type Disabled struct{}

func (Disabled) Read(context.Context) (models.ClimateReading, error) {
	return models.ClimateReading{}, ErrNoSensor
}
