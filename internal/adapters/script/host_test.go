package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/google/go-cmp/cmp"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/ports"
)

func TestRunBlinky_CallOrder(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	host := NewHost(bank)

	summary, err := host.RunBlinky(context.Background())
	if err != nil {
		t.Fatalf("RunBlinky failed: %v", err)
	}
	if summary.OnCalls != 1000 || summary.OffCalls != 1000 {
		t.Errorf("expected 1000 on/off calls, got %d/%d", summary.OnCalls, summary.OffCalls)
	}
	if summary.Blinks() != 1000 {
		t.Errorf("expected 1000 blinks, got %d", summary.Blinks())
	}
	if summary.Source != "script:blinky.js" {
		t.Errorf("unexpected source %q", summary.Source)
	}

	want := make([]mock.Call, 0, 2000)
	for i := 0; i < 1000; i++ {
		id := domain.LEDID(i % 4)
		want = append(want, mock.Call{LED: id, On: true}, mock.Call{LED: id, On: false})
	}
	if diff := cmp.Diff(want, bank.Calls()); diff != "" {
		t.Errorf("call log mismatch (-want +got):\n%s", diff)
	}

	for id := domain.LEDID(0); id < domain.DefaultLEDCount; id++ {
		if bank.IsOn(id) {
			t.Errorf("led %d left on", id)
		}
	}
}

func TestRun_ReturnsTrue(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	host := NewHost(bank)

	src := `if (led_on(1) !== true || led_off(1) !== true) { throw new Error("want true"); }`
	if _, err := host.Run(context.Background(), "ret.js", src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRun_FloatIsTruncated(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	host := NewHost(bank)

	if _, err := host.Run(context.Background(), "float.js", `led_on(2.9); led_off(1.5); led_on(-0.5);`); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []mock.Call{{LED: 2, On: true}, {LED: 1, On: false}, {LED: 0, On: true}}
	if diff := cmp.Diff(want, bank.Calls()); diff != "" {
		t.Errorf("call log mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_BadArgumentAborts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "string", src: `led_on("1");`},
		{name: "missing", src: `led_on();`},
		{name: "boolean", src: `led_off(true);`},
		{name: "negative", src: `led_on(-1);`},
		{name: "nan", src: `led_on(NaN);`},
		{name: "caught", src: `try { led_on({}); } catch (e) {} led_on(0);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
			host := NewHost(bank)

			_, err := host.Run(context.Background(), tt.name+".js", tt.src)
			if !errors.Is(err, domain.ErrBadArgument) {
				t.Fatalf("expected ErrBadArgument, got %v", err)
			}
			if len(bank.Calls()) != 0 {
				t.Errorf("expected no led calls after abort, got %v", bank.Calls())
			}
		})
	}
}

func TestRun_DriverErrorAborts(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	host := NewHost(bank)

	summary, err := host.Run(context.Background(), "range.js", `led_on(0); led_off(0); led_on(7); led_on(1);`)
	if !errors.Is(err, domain.ErrInvalidLED) {
		t.Fatalf("expected ErrInvalidLED, got %v", err)
	}
	if summary.OnCalls != 2 || summary.OffCalls != 1 {
		t.Errorf("expected 2 on / 1 off attempts, got %d/%d", summary.OnCalls, summary.OffCalls)
	}
	if len(bank.Calls()) != 2 {
		t.Errorf("expected 2 successful calls, got %d", len(bank.Calls()))
	}
}

func TestRun_SyntaxError(t *testing.T) {
	host := NewHost(mock.NewFakeLEDBank(1))

	_, err := host.Run(context.Background(), "broken.js", `function (`)
	if !errors.Is(err, domain.ErrScriptCompile) {
		t.Errorf("expected ErrScriptCompile, got %v", err)
	}
}

func TestRun_UncaughtException(t *testing.T) {
	host := NewHost(mock.NewFakeLEDBank(1))

	_, err := host.Run(context.Background(), "throw.js", `throw new Error("lamp test failed");`)
	if !errors.Is(err, domain.ErrScriptFailed) {
		t.Fatalf("expected ErrScriptFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "lamp test failed") {
		t.Errorf("expected exception message in error, got %v", err)
	}
}

func TestRun_ContextCancelInterrupts(t *testing.T) {
	bank := mock.NewFakeLEDBank(1)
	host := NewHost(bank)
	ctx, cancel := context.WithCancel(context.Background())

	src := `led_on(0); for (;;) {}`
	done := make(chan error, 1)
	go func() {
		_, err := host.Run(ctx, "spin.js", src)
		done <- err
	}()

	for len(bank.Calls()) == 0 {
		// wait until the script is inside the loop
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_RecordsEventsWithRunID(t *testing.T) {
	repo := memory.NewEventRepository()
	rec := ports.NewRecorder(mock.NewFakeLEDBank(domain.DefaultLEDCount), repo)
	host := NewHost(rec)

	summary, err := host.Run(context.Background(), "two.js", `led_on(3); led_off(3);`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	latest, err := repo.GetLatestEvent(context.Background())
	if err != nil {
		t.Fatalf("GetLatestEvent failed: %v", err)
	}
	if latest.RunID != summary.RunID {
		t.Errorf("expected run id %q, got %q", summary.RunID, latest.RunID)
	}
	if latest.LED != 3 || latest.On {
		t.Errorf("unexpected latest event: %+v", latest)
	}
}

func TestToLEDID(t *testing.T) {
	vm := goja.New()

	tests := []struct {
		name    string
		v       goja.Value
		want    domain.LEDID
		wantErr bool
	}{
		{name: "int", v: vm.ToValue(3), want: 3},
		{name: "float", v: vm.ToValue(3.7), want: 3},
		{name: "negative fraction truncates to zero", v: vm.ToValue(-0.5), want: 0},
		{name: "minus one", v: vm.ToValue(-1.0), wantErr: true},
		{name: "negative float", v: vm.ToValue(-1.5), wantErr: true},
		{name: "max uint32", v: vm.ToValue(int64(4294967295)), want: 4294967295},
		{name: "too large", v: vm.ToValue(int64(4294967296)), wantErr: true},
		{name: "string", v: vm.ToValue("3"), wantErr: true},
		{name: "undefined", v: goja.Undefined(), wantErr: true},
		{name: "nil", v: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLEDID(tt.v)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrBadArgument) {
					t.Errorf("expected ErrBadArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
