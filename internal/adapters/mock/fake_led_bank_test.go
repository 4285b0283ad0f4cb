package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

func TestFakeLEDBank_TracksState(t *testing.T) {
	bank := NewFakeLEDBank(domain.DefaultLEDCount)
	ctx := context.Background()

	if err := bank.LEDOn(ctx, 2); err != nil {
		t.Fatalf("LEDOn failed: %v", err)
	}
	if !bank.IsOn(2) {
		t.Error("expected led 2 on")
	}

	if err := bank.LEDOff(ctx, 2); err != nil {
		t.Fatalf("LEDOff failed: %v", err)
	}
	if bank.IsOn(2) {
		t.Error("expected led 2 off")
	}

	if got := len(bank.Calls()); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestFakeLEDBank_OutOfRange(t *testing.T) {
	bank := NewFakeLEDBank(domain.DefaultLEDCount)

	err := bank.LEDOn(context.Background(), 4)
	if !errors.Is(err, domain.ErrInvalidLED) {
		t.Errorf("expected ErrInvalidLED, got %v", err)
	}
	if len(bank.Calls()) != 0 {
		t.Error("failed call should not be recorded")
	}
}

func TestFakeLEDBank_Closed(t *testing.T) {
	bank := NewFakeLEDBank(1)
	_ = bank.Close()

	if err := bank.LEDOn(context.Background(), 0); err != domain.ErrDriverClosed {
		t.Errorf("expected ErrDriverClosed, got %v", err)
	}
}
