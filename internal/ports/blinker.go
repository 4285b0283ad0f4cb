package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

const (
	// DefaultDelay is the busy-wait count between on and off
	DefaultDelay = 1000

	// DefaultCycles is the number of blinks in one run
	DefaultCycles = 1000

	// MaxCycles bounds the blinks a single run may request
	MaxCycles = 1_000_000
)

// BusyWait spins a counter from zero up to t and returns the final count.
// It is a CPU delay with no timing guarantee.
func BusyWait(t int) int {
	n := 0
	for n < t {
		n++
	}
	return n
}

// Blinker drives the native blink loop against an LED driver
type Blinker struct {
	driver LEDDriver
	delay  int
	cycles int
}

// NewBlinker creates a blinker; non-positive delay or cycles fall back to defaults
func NewBlinker(driver LEDDriver, delay, cycles int) *Blinker {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if cycles <= 0 {
		cycles = DefaultCycles
	}
	return &Blinker{
		driver: driver,
		delay:  delay,
		cycles: cycles,
	}
}

// Cycles returns the number of blinks Run performs by default
func (b *Blinker) Cycles() int {
	return b.cycles
}

// Blink switches one LED on, busy-waits, then switches it off
func (b *Blinker) Blink(ctx context.Context, id domain.LEDID) error {
	var summary domain.RunSummary
	return b.blink(ctx, id, &summary)
}

func (b *Blinker) blink(ctx context.Context, id domain.LEDID, summary *domain.RunSummary) error {
	summary.OnCalls++
	if err := b.driver.LEDOn(ctx, id); err != nil {
		return fmt.Errorf("led_on(%d): %w", id, err)
	}
	BusyWait(b.delay)
	summary.OffCalls++
	if err := b.driver.LEDOff(ctx, id); err != nil {
		return fmt.Errorf("led_off(%d): %w", id, err)
	}
	return nil
}

// Run blinks LED i % Count() for i in [0, cycles).
// A non-positive cycles uses the blinker's default; more than MaxCycles is
// ErrTooManyCycles.
func (b *Blinker) Run(ctx context.Context, cycles int) (domain.RunSummary, error) {
	if cycles <= 0 {
		cycles = b.cycles
	}

	summary := domain.RunSummary{
		RunID:   uuid.NewString(),
		Source:  "native",
		Started: time.Now(),
	}
	ctx = WithRunID(ctx, summary.RunID)

	if cycles > MaxCycles {
		return summary, fmt.Errorf("%d cycles: %w", cycles, domain.ErrTooManyCycles)
	}
	count := b.driver.Count()
	if count <= 0 {
		return summary, domain.ErrInvalidLEDCount
	}

	var err error
	for i := 0; i < cycles; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = b.blink(ctx, domain.LEDID(i%count), &summary); err != nil {
			break
		}
	}

	summary.Duration = time.Since(summary.Started)
	return summary, err
}

// Start runs the blink loop once per interval as a heartbeat
// This runs in a goroutine until context is cancelled
func (b *Blinker) Start(ctx context.Context, interval time.Duration) {
	log.Info().
		Dur("interval", interval).
		Int("cycles", b.cycles).
		Msg("starting heartbeat blinker")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.runOnce(ctx)

		case <-ctx.Done():
			log.Info().Msg("stopping heartbeat blinker")
			return
		}
	}
}

func (b *Blinker) runOnce(ctx context.Context) {
	summary, err := b.Run(ctx, b.cycles)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Str("run_id", summary.RunID).Msg("heartbeat run failed")
		}
		return
	}

	log.Debug().
		Str("run_id", summary.RunID).
		Int("blinks", summary.Blinks()).
		Dur("duration", summary.Duration).
		Msg("heartbeat run complete")
}
