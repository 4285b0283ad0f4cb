// Package logled provides an LED driver for boards without LEDs: every
// transition is written to the log instead of a pin.
package logled

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// Driver logs LED transitions
type Driver struct {
	logger zerolog.Logger
	count  int
	closed atomic.Bool
}

// New creates a driver for count LEDs writing to logger
func New(logger zerolog.Logger, count int) *Driver {
	return &Driver{
		logger: logger.With().Str("driver", "log").Logger(),
		count:  count,
	}
}

// LEDOn logs the LED switching on
func (d *Driver) LEDOn(ctx context.Context, id domain.LEDID) error {
	return d.set(id, true)
}

// LEDOff logs the LED switching off
func (d *Driver) LEDOff(ctx context.Context, id domain.LEDID) error {
	return d.set(id, false)
}

func (d *Driver) set(id domain.LEDID, on bool) error {
	if d.closed.Load() {
		return domain.ErrDriverClosed
	}
	if err := domain.ValidateLED(id, d.count); err != nil {
		return err
	}

	d.logger.Debug().
		Uint32("led", uint32(id)).
		Bool("on", on).
		Msg("set led")
	return nil
}

// Count returns the number of LEDs
func (d *Driver) Count() int {
	return d.count
}

// Close stops the driver
func (d *Driver) Close() error {
	d.closed.Store(true)
	return nil
}
