// Package blinky is the blink firmware: a timer task that blinks the LED
// and a button task that switches the blink rate. Both share state through
// priority-ceiling resources.
package blinky

import (
	"context"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"omibyte.io/blinky/kernel"
	"omibyte.io/blinky/peripheral"
)

// Resource and task names.
const (
	LED      = "LED"
	COUNT    = "COUNT"
	INTERVAL = "INTERVAL"

	TickTask   = "sys_tick"
	ButtonTask = "button"
)

const (
	TickPriority   kernel.Priority = 2
	ButtonPriority kernel.Priority = 1

	// Every resource is shared with the tick task.
	ceiling = TickPriority
)

// DefaultTickRate gives a 10 ms tick.
const DefaultTickRate = 100 * physic.Hertz

type Options struct {
	Board     peripheral.Board
	Intervals Intervals
	Settle    SettleMode
	TickRate  physic.Frequency

	// Button electrical configuration. The zero values select a floating
	// input with falling edge detection.
	Pull gpio.Pull
	Edge gpio.Edge

	Core       kernel.Core
	Controller peripheral.InterruptController
	Tracer     kernel.Tracer
}

// State is a snapshot of the shared state.
type State struct {
	LedOn     bool     `yaml:"ledOn"`
	Toggles   uint64   `yaml:"toggles"`
	Count     uint32   `yaml:"count"`
	Interval  Interval `yaml:"interval"`
	Debounces uint64   `yaml:"debounces"`
}

type App struct {
	k     *kernel.Kernel
	board peripheral.Board
	opts  Options

	led      *kernel.Resource[Led]
	count    *kernel.Resource[uint32]
	interval *kernel.Resource[Interval]

	debounces uint64
}

// New wires the firmware tasks and resources onto a kernel. Nothing touches
// the board until Start.
func New(opts Options) (*App, error) {
	if opts.Board == nil {
		return nil, ErrNoBoard
	}
	if opts.Intervals == (Intervals{}) {
		opts.Intervals = DefaultIntervals
	}
	if err := opts.Intervals.validate(); err != nil {
		return nil, err
	}
	if opts.TickRate == 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.Pull == gpio.PullNoChange {
		opts.Pull = gpio.Float
	}
	if opts.Edge == gpio.NoEdge {
		opts.Edge = gpio.FallingEdge
	}

	a := &App{
		board:    opts.Board,
		opts:     opts,
		led:      kernel.NewResource(LED, ceiling, Led{out: opts.Board.LED()}),
		count:    kernel.NewResource[uint32](COUNT, ceiling, 0),
		interval: kernel.NewResource[Interval](INTERVAL, ceiling, 0),
	}

	k, err := kernel.New(a.config(), kernel.Options{
		Core:       opts.Core,
		Controller: opts.Controller,
		Tracer:     opts.Tracer,
	})
	if err != nil {
		return nil, err
	}
	a.k = k
	return a, nil
}

func (a *App) config() kernel.Config {
	return kernel.Config{
		Tasks: []kernel.Task{
			{
				Name:      TickTask,
				IRQ:       a.board.TickIRQ(),
				Priority:  TickPriority,
				Resources: []string{LED, COUNT, INTERVAL},
				Run:       a.tick,
			},
			{
				Name:      ButtonTask,
				IRQ:       a.board.ButtonIRQ(),
				Priority:  ButtonPriority,
				Resources: []string{LED, INTERVAL},
				Run:       a.button,
			},
		},
		Resources: []kernel.Shared{a.led, a.count, a.interval},
	}
}

// Start runs the init sequence and enables the tasks.
func (a *App) Start() error {
	return a.k.Start(a.init)
}

// Run idles until ctx is done or the core halts.
func (a *App) Run(ctx context.Context) error {
	return a.k.Run(ctx)
}

func (a *App) Kernel() *kernel.Kernel {
	return a.k
}

func (a *App) State() State {
	led := a.led.Peek()
	return State{
		LedOn:     led.IsOn(),
		Toggles:   led.Toggles(),
		Count:     a.count.Peek(),
		Interval:  a.interval.Peek(),
		Debounces: a.debounces,
	}
}
