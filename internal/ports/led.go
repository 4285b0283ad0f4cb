package ports

import (
	"context"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// LEDDriver defines how to switch LEDs
// This is a PORT - adapters (GPIO, Log, Mock) will implement it
type LEDDriver interface {
	// LEDOn switches the LED on
	LEDOn(ctx context.Context, id domain.LEDID) error

	// LEDOff switches the LED off
	LEDOff(ctx context.Context, id domain.LEDID) error

	// Count returns how many LEDs the driver addresses
	Count() int

	// Close releases any resources
	Close() error
}

type runIDKey struct{}

// WithRunID tags ctx with the run that LED calls belong to
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFrom returns the run ID carried by ctx, or ""
func RunIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
