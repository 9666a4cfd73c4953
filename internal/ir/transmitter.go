package ir

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
)

// maxDrainReads bounds how long a resync may consume a chattering port.
const maxDrainReads = 8

// SerialTransmitter writes frames to the emitter and waits for its ACK byte.
type SerialTransmitter struct {
	mu   sync.Mutex
	port io.ReadWriteCloser
	log  *logger.Logger

	// desynced is set when an exchange ended without a reply; a late reply
	// may still be buffered on the port.
	desynced bool
}

// OpenSerial opens the emitter's serial port (8N1).
func OpenSerial(address string, baud int, timeout time.Duration, log *logger.Logger) (*SerialTransmitter, error) {
	port, err := serial.Open(&serial.Config{
		Address:  address,
		BaudRate: baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open ir emitter at %q: %w", address, err)
	}
	return NewSerialTransmitter(port, log), nil
}

// NewSerialTransmitter wraps an already opened port.
func NewSerialTransmitter(port io.ReadWriteCloser, log *logger.Logger) *SerialTransmitter {
	return &SerialTransmitter{port: port, log: log}
}

// Transmit sends the full state and returns once the emitter acknowledged it.
func (t *SerialTransmitter) Transmit(ctx context.Context, s models.ApplianceState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frame, err := EncodeFrame(s)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.desynced {
		t.drain()
		t.desynced = false
	}

	if _, err := t.port.Write(frame); err != nil {
		t.desynced = true
		return fmt.Errorf("write frame: %w", err)
	}
	ack := make([]byte, 1)
	if _, err := io.ReadFull(t.port, ack); err != nil {
		t.desynced = true
		return fmt.Errorf("read ack: %w", err)
	}
	if ack[0] != AckByte {
		return fmt.Errorf("emitter replied 0x%02x instead of ack", ack[0])
	}
	if t.log != nil {
		t.log.Debugw("ir_frame_sent", "frame", hex.EncodeToString(frame))
	}
	return nil
}

// drain discards buffered input until the port reports nothing pending
// (a read timeout or an empty read).
func (t *SerialTransmitter) drain() {
	buf := make([]byte, 16)
	for i := 0; i < maxDrainReads; i++ {
		n, err := t.port.Read(buf)
		if n > 0 && t.log != nil {
			t.log.Warnw("ir_stale_reply_discarded", "bytes", hex.EncodeToString(buf[:n]))
		}
		if err != nil || n == 0 {
			return
		}
	}
}

func (t *SerialTransmitter) Close() error {
	return t.port.Close()
}

// DryRunTransmitter logs frames instead of sending them. Used when no emitter is configured.
type DryRunTransmitter struct {
	log *logger.Logger
}

func NewDryRunTransmitter(log *logger.Logger) *DryRunTransmitter {
	return &DryRunTransmitter{log: log}
}

func (t *DryRunTransmitter) Transmit(ctx context.Context, s models.ApplianceState) error {
	frame, err := EncodeFrame(s)
	if err != nil {
		return err
	}
	if t.log != nil {
		t.log.Infow("ir_dry_run", "frame", hex.EncodeToString(frame), "state", s)
	}
	return nil
}

func (t *DryRunTransmitter) Close() error { return nil }
