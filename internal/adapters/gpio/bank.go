// Package gpio drives LEDs wired to Raspberry Pi GPIO pins.
package gpio

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	rpio "github.com/stianeikeland/go-rpio/v4"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// Bank maps LED i to the i-th BCM pin
type Bank struct {
	mu     sync.Mutex
	pins   []rpio.Pin
	closed bool
}

// Open maps /dev/gpiomem and configures every pin as a low output
func Open(pins []uint8) (*Bank, error) {
	if len(pins) == 0 {
		return nil, domain.ErrInvalidLEDCount
	}
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open gpio: %w", err)
	}

	b := &Bank{pins: make([]rpio.Pin, len(pins))}
	for i, n := range pins {
		pin := rpio.Pin(n)
		pin.Output()
		pin.Low()
		b.pins[i] = pin
	}

	log.Info().Int("leds", len(pins)).Msg("gpio led bank ready")
	return b, nil
}

// ParsePins parses a comma separated list of BCM pin numbers, e.g. "17,27,22,23"
func ParsePins(s string) ([]uint8, error) {
	var pins []uint8
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid gpio pin %q: %w", field, err)
		}
		pins = append(pins, uint8(n))
	}
	if len(pins) == 0 {
		return nil, domain.ErrInvalidLEDCount
	}
	return pins, nil
}

// LEDOn drives the LED's pin high
func (b *Bank) LEDOn(ctx context.Context, id domain.LEDID) error {
	return b.set(id, rpio.High)
}

// LEDOff drives the LED's pin low
func (b *Bank) LEDOff(ctx context.Context, id domain.LEDID) error {
	return b.set(id, rpio.Low)
}

func (b *Bank) set(id domain.LEDID, state rpio.State) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrDriverClosed
	}
	if err := domain.ValidateLED(id, len(b.pins)); err != nil {
		return err
	}

	b.pins[id].Write(state)
	return nil
}

// Count returns the number of configured pins
func (b *Bank) Count() int {
	return len(b.pins)
}

// Close switches every LED off and unmaps gpio memory
func (b *Bank) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, pin := range b.pins {
		pin.Low()
	}
	return rpio.Close()
}
