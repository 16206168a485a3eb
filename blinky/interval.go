package blinky

import (
	"fmt"
	"strings"
)

// Interval is the number of ticks per LED half period.
type Interval uint32

// Intervals are the two values the button switches between.
type Intervals struct {
	Normal Interval `yaml:"normal"`
	Fast   Interval `yaml:"fast"`
}

var DefaultIntervals = Intervals{Normal: 100, Fast: 20}

func (p Intervals) validate() error {
	if p.Normal == 0 || p.Fast == 0 {
		return fmt.Errorf("%w: intervals must be non-zero, got %d/%d", ErrInvalidOptions, p.Normal, p.Fast)
	}
	if p.Normal == p.Fast {
		return fmt.Errorf("%w: normal and fast interval are both %d", ErrInvalidOptions, p.Normal)
	}
	return nil
}

// Next is the interval a debounced press switches v to. Anything that is
// not the fast value counts as normal.
func (p Intervals) Next(v Interval) Interval {
	if v == p.Fast {
		return p.Normal
	}
	return p.Fast
}

// SettleMode decides when the button task stops polling the LED.
type SettleMode uint8

const (
	// SettleOnToggle waits until the blink task has toggled the LED at
	// least once since polling began. Unlike SettleOnLedOff it also waits
	// when the press lands while the LED is already off, so a press in the
	// middle of a normal period never cuts that period short.
	SettleOnToggle SettleMode = iota

	// SettleOnLedOff waits until the LED is observed off. A press while
	// the LED is already off settles immediately.
	SettleOnLedOff
)

func (m SettleMode) String() string {
	switch m {
	case SettleOnToggle:
		return "toggle"
	case SettleOnLedOff:
		return "led-off"
	}
	return fmt.Sprintf("SettleMode(%d)", uint8(m))
}

func ParseSettleMode(s string) (SettleMode, error) {
	switch strings.ToLower(s) {
	case "", "toggle":
		return SettleOnToggle, nil
	case "led-off", "off":
		return SettleOnLedOff, nil
	}
	return 0, fmt.Errorf("%w: settle mode %q", ErrInvalidOptions, s)
}
