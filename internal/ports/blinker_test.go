package ports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/ports"
)

func TestBusyWait(t *testing.T) {
	tests := []struct {
		t    int
		want int
	}{
		{t: 1000, want: 1000},
		{t: 1, want: 1},
		{t: 0, want: 0},
		{t: -5, want: 0},
	}

	for _, tt := range tests {
		if got := ports.BusyWait(tt.t); got != tt.want {
			t.Errorf("BusyWait(%d) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestBlinker_Blink(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	b := ports.NewBlinker(bank, 0, 0)

	if err := b.Blink(context.Background(), 2); err != nil {
		t.Fatalf("Blink failed: %v", err)
	}

	want := []mock.Call{{LED: 2, On: true}, {LED: 2, On: false}}
	if diff := cmp.Diff(want, bank.Calls()); diff != "" {
		t.Errorf("call log mismatch (-want +got):\n%s", diff)
	}
}

func TestBlinker_RunDefault(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	b := ports.NewBlinker(bank, 0, 0)

	if b.Cycles() != ports.DefaultCycles {
		t.Fatalf("expected default cycles %d, got %d", ports.DefaultCycles, b.Cycles())
	}

	summary, err := b.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Blinks() != 1000 {
		t.Errorf("expected 1000 blinks, got %d", summary.Blinks())
	}
	if summary.Source != "native" || summary.RunID == "" {
		t.Errorf("unexpected summary: %+v", summary)
	}

	calls := bank.Calls()
	if len(calls) != 2000 {
		t.Fatalf("expected 2000 calls, got %d", len(calls))
	}
	for i := 0; i < 1000; i++ {
		id := domain.LEDID(i % 4)
		on, off := calls[2*i], calls[2*i+1]
		if on != (mock.Call{LED: id, On: true}) || off != (mock.Call{LED: id, On: false}) {
			t.Fatalf("blink %d: got %+v then %+v, want on/off of led %d", i, on, off, id)
		}
	}
}

func TestBlinker_RunStopsOnDriverError(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	boom := errors.New("pin stuck")
	bank.FailOn(2, boom)
	b := ports.NewBlinker(bank, 1, 10)

	summary, err := b.Run(context.Background(), 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected pin error, got %v", err)
	}
	if summary.OnCalls != 3 || summary.OffCalls != 2 {
		t.Errorf("expected 3 on / 2 off attempts, got %d/%d", summary.OnCalls, summary.OffCalls)
	}
	if len(bank.Calls()) != 4 {
		t.Errorf("expected 4 successful calls, got %d", len(bank.Calls()))
	}
}

func TestBlinker_RunCancelled(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	b := ports.NewBlinker(bank, 1, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := b.Run(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.OnCalls != 0 {
		t.Errorf("expected no calls, got %d", summary.OnCalls)
	}
}

func TestBlinker_StartHeartbeat(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	repo := memory.NewEventRepository()
	b := ports.NewBlinker(ports.NewRecorder(bank, repo), 1, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Start(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(bank.Calls()) < 8 {
		select {
		case <-deadline:
			cancel()
			<-done
			t.Fatal("heartbeat never ran")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done

	latest, err := repo.GetLatestEvent(context.Background())
	if err != nil {
		t.Fatalf("GetLatestEvent failed: %v", err)
	}
	if latest.RunID == "" {
		t.Error("expected heartbeat events to carry a run id")
	}
}

func TestBlinker_RunMaxCyclesCancelledReturnsImmediately(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	b := ports.NewBlinker(bank, 1, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	summary, err := b.Run(ctx, ports.MaxCycles)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("cancelled run took %v", elapsed)
	}
	if summary.OnCalls != 0 || len(bank.Calls()) != 0 {
		t.Errorf("expected no calls, got %d", summary.OnCalls)
	}
}

func TestBlinker_RunTooManyCycles(t *testing.T) {
	bank := mock.NewFakeLEDBank(domain.DefaultLEDCount)
	b := ports.NewBlinker(bank, 1, 10)

	_, err := b.Run(context.Background(), 1<<28)
	if !errors.Is(err, domain.ErrTooManyCycles) {
		t.Fatalf("expected ErrTooManyCycles, got %v", err)
	}
	if len(bank.Calls()) != 0 {
		t.Errorf("expected no calls, got %d", len(bank.Calls()))
	}
}
