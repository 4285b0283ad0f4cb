//go:build pico

// Command blinky-mcu is the firmware build of the blink smoke test for a
// Raspberry Pi Pico with four LEDs on GP12-GP15.
//
//	tinygo flash -target=pico ./cmd/blinky-mcu
package main

import (
	"machine"
	"time"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

const (
	delay  = 1000
	cycles = 1000
)

var leds = [domain.DefaultLEDCount]machine.Pin{
	machine.GP12,
	machine.GP13,
	machine.GP14,
	machine.GP15,
}

// spin is package-level so the busy-wait has a side effect
var spin uint32

func sleep(t uint32) {
	for spin = 0; spin < t; spin++ {
	}
}

func blink(id domain.LEDID) {
	leds[id].High()
	sleep(delay)
	leds[id].Low()
}

func main() {
	for _, led := range leds {
		led.Configure(machine.PinConfig{Mode: machine.PinOutput})
		led.Low()
	}

	seq, err := domain.Sequence(cycles, len(leds))
	if err != nil {
		println("sequence:", err.Error())
		return
	}

	start := time.Now()
	for _, id := range seq {
		blink(id)
	}
	println("blinky:", len(seq), "blinks in", time.Since(start).String())
}
