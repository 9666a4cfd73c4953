package sensor

import (
	"context"
	"sync"

	"ir_climate/internal/models"
)

// FakeReader returns a fixed reading or error.
type FakeReader struct {
	mu      sync.Mutex
	Reading models.ClimateReading
	Err     error
	Calls   int
}

func NewFakeReader(temp, humidity float64) *FakeReader {
	return &FakeReader{Reading: models.ClimateReading{Temperature: temp, Humidity: humidity}}
}

func (f *FakeReader) Read(ctx context.Context) (models.ClimateReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return models.ClimateReading{}, f.Err
	}
	return f.Reading, nil
}
