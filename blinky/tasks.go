package blinky

import (
	"periph.io/x/conn/v3/gpio"

	"omibyte.io/blinky/kernel"
)

func (a *App) init(ctx *kernel.Context) error {
	a.board.EnableClocks()
	a.board.ConfigureLED()
	if err := a.board.ConfigureButton(a.opts.Pull, a.opts.Edge); err != nil {
		return err
	}
	if err := a.board.ConfigureTick(a.opts.TickRate); err != nil {
		return err
	}
	*a.interval.Borrow(ctx) = a.opts.Intervals.Normal
	return nil
}

// tick runs on every timer interrupt and toggles the LED once per interval.
func (a *App) tick(ctx *kernel.Context) {
	count := a.count.Borrow(ctx)
	interval := *a.interval.Borrow(ctx)

	*count++
	if *count < uint32(interval) {
		return
	}
	*count = 0
	a.led.Claim(ctx, func(led *Led) {
		led.Toggle()
	})
}

// button runs on the button's edge interrupt. A press that is still held
// waits for the LED to settle and then switches the interval.
func (a *App) button(ctx *kernel.Context) {
	if a.board.Button().Read() != gpio.Low {
		return
	}
	a.board.ButtonLatch().ClearPending()

	a.settle(ctx)

	a.interval.Claim(ctx, func(v *Interval) {
		*v = a.opts.Intervals.Next(*v)
	})
	a.debounces++
}

// settle spins on short LED claims. Each claim is a preemption point where
// the tick task keeps running.
func (a *App) settle(ctx *kernel.Context) {
	var start uint64
	a.led.Claim(ctx, func(led *Led) {
		start = led.Toggles()
	})

	for done := false; !done; {
		a.led.Claim(ctx, func(led *Led) {
			switch a.opts.Settle {
			case SettleOnLedOff:
				done = !led.IsOn()
			default:
				done = led.Toggles() != start
			}
		})
	}
}
