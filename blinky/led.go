package blinky

import (
	"periph.io/x/conn/v3/gpio"

	"omibyte.io/blinky/peripheral"
)

// Led is the logical LED state together with the pin that shows it.
type Led struct {
	on      bool
	toggles uint64
	out     peripheral.Output
}

func (l *Led) IsOn() bool {
	return l.on
}

// Toggles counts every inversion since reset.
func (l *Led) Toggles() uint64 {
	return l.toggles
}

// Toggle inverts the state and drives the pin to match.
func (l *Led) Toggle() {
	l.on = !l.on
	l.toggles++
	if l.out == nil {
		return
	}
	if l.on {
		l.out.Set(gpio.High)
	} else {
		l.out.Set(gpio.Low)
	}
}
