// Package script runs JavaScript against an LED driver. Scripts see two
// globals, led_on(id) and led_off(id), and run once to completion.
package script

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/ports"
)

// Blinky is the bundled smoke test: 1000 blinks cycling over LEDs 0-3
//
//go:embed scripts/blinky.js
var Blinky string

// BlinkyName is the script name reported for Blinky runs
const BlinkyName = "blinky.js"

// Host executes scripts one at a time, each in a fresh runtime
type Host struct {
	mu     sync.Mutex
	driver ports.LEDDriver
}

// NewHost creates a host bound to driver
func NewHost(driver ports.LEDDriver) *Host {
	return &Host{driver: driver}
}

// RunBlinky runs the bundled smoke test
func (h *Host) RunBlinky(ctx context.Context) (domain.RunSummary, error) {
	return h.Run(ctx, BlinkyName, Blinky)
}

// Run compiles and executes source. A bad argument to led_on/led_off or a
// driver error aborts the script; JavaScript cannot catch the abort.
func (h *Host) Run(ctx context.Context, name, source string) (domain.RunSummary, error) {
	summary := domain.RunSummary{
		RunID:   uuid.NewString(),
		Source:  "script:" + name,
		Started: time.Now(),
	}

	prog, err := goja.Compile(name, source, false)
	if err != nil {
		return summary, fmt.Errorf("%w: %s: %w", domain.ErrScriptCompile, name, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	vm := goja.New()
	runCtx := ports.WithRunID(ctx, summary.RunID)

	var failure error
	abort := func(err error) {
		if failure == nil {
			failure = err
		}
		vm.Interrupt(err)
	}

	bindings := map[string]goja.Value{
		"led_on":  vm.ToValue(h.native(vm, runCtx, "led_on", h.driver.LEDOn, &summary.OnCalls, abort)),
		"led_off": vm.ToValue(h.native(vm, runCtx, "led_off", h.driver.LEDOff, &summary.OffCalls, abort)),
	}
	for fn, v := range bindings {
		if err := vm.Set(fn, v); err != nil {
			return summary, fmt.Errorf("bind %s: %w", fn, err)
		}
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	log.Debug().
		Str("run_id", summary.RunID).
		Str("script", name).
		Msg("running script")

	_, err = vm.RunProgram(prog)
	summary.Duration = time.Since(summary.Started)

	if err == nil {
		return summary, nil
	}
	if failure != nil {
		return summary, fmt.Errorf("%s: %w", name, failure)
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return summary, cause
		}
	}
	return summary, fmt.Errorf("%w: %s: %w", domain.ErrScriptFailed, name, err)
}

func (h *Host) native(
	vm *goja.Runtime,
	ctx context.Context,
	fn string,
	call func(context.Context, domain.LEDID) error,
	calls *int,
	abort func(error),
) func(goja.FunctionCall) goja.Value {
	return func(fc goja.FunctionCall) goja.Value {
		id, err := ToLEDID(fc.Argument(0))
		if err != nil {
			abort(fmt.Errorf("%s: %w", fn, err))
			return goja.Undefined()
		}

		*calls++
		if err := call(ctx, id); err != nil {
			abort(fmt.Errorf("%s(%d): %w", fn, id, err))
			return goja.Undefined()
		}
		return vm.ToValue(true)
	}
}

// ToLEDID converts a script value to an LED id. Integers pass through and
// floats are truncated toward zero; anything else, or a value that does not
// truncate into uint32, is ErrBadArgument.
func ToLEDID(v goja.Value) (domain.LEDID, error) {
	if v == nil {
		return 0, domain.ErrBadArgument
	}
	switch n := v.Export().(type) {
	case int64:
		if n >= 0 && n <= math.MaxUint32 {
			return domain.LEDID(n), nil
		}
	case float64:
		// truncation toward zero maps (-1, 0) to LED 0
		if n > -1 && n < math.MaxUint32+1 {
			return domain.LEDID(uint32(n)), nil
		}
	}
	return 0, fmt.Errorf("%w, got %s", domain.ErrBadArgument, v.String())
}
