package mock

import (
	"context"
	"sync"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// Call is one LED call observed by the fake bank
type Call struct {
	LED domain.LEDID
	On  bool
}

// FakeLEDBank simulates a bank of LEDs for development and tests
// This implements the ports.LEDDriver interface
type FakeLEDBank struct {
	mu     sync.Mutex
	states []bool
	calls  []Call
	failOn map[domain.LEDID]error
	closed bool
}

// NewFakeLEDBank creates a bank of count LEDs, all off
func NewFakeLEDBank(count int) *FakeLEDBank {
	return &FakeLEDBank{
		states: make([]bool, count),
		failOn: make(map[domain.LEDID]error),
	}
}

// FailOn makes every call for id return err
func (b *FakeLEDBank) FailOn(id domain.LEDID, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failOn[id] = err
}

// LEDOn switches the simulated LED on
func (b *FakeLEDBank) LEDOn(ctx context.Context, id domain.LEDID) error {
	return b.set(id, true)
}

// LEDOff switches the simulated LED off
func (b *FakeLEDBank) LEDOff(ctx context.Context, id domain.LEDID) error {
	return b.set(id, false)
}

func (b *FakeLEDBank) set(id domain.LEDID, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrDriverClosed
	}
	if err := domain.ValidateLED(id, len(b.states)); err != nil {
		return err
	}
	if err := b.failOn[id]; err != nil {
		return err
	}

	b.states[id] = on
	b.calls = append(b.calls, Call{LED: id, On: on})
	return nil
}

// Count returns the number of simulated LEDs
func (b *FakeLEDBank) Count() int {
	return len(b.states)
}

// IsOn reports the current state of an LED
func (b *FakeLEDBank) IsOn(id domain.LEDID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(id) < len(b.states) && b.states[id]
}

// Calls returns a copy of every successful call, in order
func (b *FakeLEDBank) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Reset forgets recorded calls and switches every LED off
func (b *FakeLEDBank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
	clear(b.states)
}

// Close marks the bank closed; later calls fail with ErrDriverClosed
func (b *FakeLEDBank) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
