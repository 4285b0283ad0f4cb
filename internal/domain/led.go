package domain

import (
	"fmt"
	"time"
)

// DefaultLEDCount is the number of LEDs on the reference board
const DefaultLEDCount = 4

// LEDID identifies an LED on a bank, counted from zero
type LEDID uint32

// ValidateLED checks that id addresses one of count LEDs
func ValidateLED(id LEDID, count int) error {
	if count <= 0 {
		return ErrInvalidLEDCount
	}
	if uint64(id) >= uint64(count) {
		return fmt.Errorf("led %d of %d: %w", id, count, ErrInvalidLED)
	}
	return nil
}

// Sequence returns the order in which a run visits the LEDs.
// Element i is i % count.
func Sequence(cycles, count int) ([]LEDID, error) {
	if count <= 0 {
		return nil, ErrInvalidLEDCount
	}
	if cycles <= 0 {
		return nil, nil
	}

	seq := make([]LEDID, cycles)
	for i := range seq {
		seq[i] = LEDID(i % count)
	}
	return seq, nil
}

// LEDEvent is a single on/off transition of one LED
type LEDEvent struct {
	ID        int64
	LED       LEDID
	On        bool
	RunID     string
	Timestamp time.Time
}

// NewLEDEvent creates an event stamped with the current time
func NewLEDEvent(led LEDID, on bool, runID string) *LEDEvent {
	return &LEDEvent{
		LED:       led,
		On:        on,
		RunID:     runID,
		Timestamp: time.Now(),
	}
}

// Action returns "on" or "off"
func (e *LEDEvent) Action() string {
	if e.On {
		return "on"
	}
	return "off"
}

// RunSummary describes one pass of the blink loop, native or scripted
type RunSummary struct {
	RunID    string
	Source   string
	OnCalls  int
	OffCalls int
	Started  time.Time
	Duration time.Duration
}

// Blinks returns the number of completed on/off pairs
func (s RunSummary) Blinks() int {
	return min(s.OnCalls, s.OffCalls)
}
