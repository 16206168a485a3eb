// Package runner runs the blink firmware on the simulated board and reports
// what it did.
package runner

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"omibyte.io/blinky/blinky"
	"omibyte.io/blinky/boards"
	"omibyte.io/blinky/device/cortexm"
	"omibyte.io/blinky/device/stm32f103"
	"omibyte.io/blinky/kernel"
	"omibyte.io/blinky/sim"
)

type Result struct {
	Scenario string       `yaml:"scenario"`
	Board    string       `yaml:"board"`
	Settle   string       `yaml:"settle"`
	State    blinky.State `yaml:"state"`
	Report   sim.Report   `yaml:"report"`

	Trace []sim.Record `yaml:"-"`
}

// Run plays the scenario to its end. The machine halting at its tick budget
// is the normal way for a run to finish.
func Run(ctx context.Context, opts Options) (result Result, err error) {
	s := opts.Scenario
	if s.Ticks == 0 {
		return Result{}, ErrNoScenario
	}

	boardName := firstOf(opts.Board, s.Board, opts.Environment.Value("BLINKY_BOARD"), boards.Default)
	def, err := boards.Lookup(boardName)
	if err != nil {
		return Result{}, err
	}
	settle, err := blinky.ParseSettleMode(firstOf(opts.Settle, s.Settle, opts.Environment.Value("BLINKY_SETTLE")))
	if err != nil {
		return Result{}, err
	}

	m, app, err := assemble(def, s, settle, opts)
	if err != nil {
		return Result{}, err
	}

	defer func() {
		// A task that never returns trips the machine's watchdog
		if r := recover(); r != nil {
			werr, ok := r.(error)
			if !ok || !errors.Is(werr, sim.ErrWatchdog) {
				panic(r)
			}
			err = werr
		}
	}()

	if err := app.Start(); err != nil {
		return Result{}, err
	}
	if err := app.Run(ctx); err != nil && !errors.Is(err, kernel.ErrHalted) {
		return Result{}, err
	}

	report := m.Report()
	return Result{
		Scenario: s.Name,
		Board:    def.Name,
		Settle:   settle.String(),
		State:    app.State(),
		Report:   report,
		Trace:    m.Drain(),
	}, nil
}

func assemble(def boards.Board, s sim.Scenario, settle blinky.SettleMode, opts Options) (*sim.Machine, *blinky.App, error) {
	coreHz, err := def.CoreHz()
	if err != nil {
		return nil, nil, err
	}
	tickHz, err := def.TickHz()
	if err != nil {
		return nil, nil, err
	}
	pull, err := def.Button.PullMode()
	if err != nil {
		return nil, nil, err
	}
	edge, err := def.Button.EdgeMode()
	if err != nil {
		return nil, nil, err
	}
	buttonIRQ, err := stm32f103.EXTIIRQ(def.Button.Pin)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", def.Button, err)
	}

	m, err := sim.New(sim.Config{
		CoreClock:     coreHz,
		CyclesPerStep: opts.CyclesPerStep,
		TickIRQ:       cortexm.SysTick,
		ButtonIRQ:     buttonIRQ,
		Ticks:         s.Ticks,
		Presses:       s.Presses,
		TraceSize:     opts.TraceSize,
	})
	if err != nil {
		return nil, nil, err
	}

	app, err := blinky.New(blinky.Options{
		Board: m.Board(),
		Intervals: blinky.Intervals{
			Normal: blinky.Interval(s.Intervals.Normal),
			Fast:   blinky.Interval(s.Intervals.Fast),
		},
		Settle:     settle,
		TickRate:   tickHz,
		Pull:       pull,
		Edge:       edge,
		Core:       m,
		Controller: m,
		Tracer:     m,
	})
	if err != nil {
		return nil, nil, err
	}
	m.Connect(app.Kernel())
	return m, app, nil
}

// Check compares the result against the scenario's expectations and reports
// every mismatch.
func (r Result) Check(e *sim.Expect) error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Toggles != nil && r.Report.Toggles != *e.Toggles {
		errs = append(errs, fmt.Errorf("%w: %d toggles, expected %d", ErrExpectation, r.Report.Toggles, *e.Toggles))
	}
	if e.ToggleTicks != nil {
		var ticks []uint64
		var at uint64
		for _, p := range r.Report.HalfPeriods {
			at += p
			ticks = append(ticks, at)
		}
		if !slices.Equal(ticks, e.ToggleTicks) {
			errs = append(errs, fmt.Errorf("%w: toggles at ticks %v, expected %v", ErrExpectation, ticks, e.ToggleTicks))
		}
	}
	if e.Interval != nil && uint32(r.State.Interval) != *e.Interval {
		errs = append(errs, fmt.Errorf("%w: interval %d, expected %d", ErrExpectation, r.State.Interval, *e.Interval))
	}
	if e.Debounces != nil && r.State.Debounces != *e.Debounces {
		errs = append(errs, fmt.Errorf("%w: %d debounces, expected %d", ErrExpectation, r.State.Debounces, *e.Debounces))
	}
	return errors.Join(errs...)
}

func firstOf(values ...string) string {
	i := slices.IndexFunc(values, func(v string) bool { return v != "" })
	if i < 0 {
		return ""
	}
	return values[i]
}
