package runner

import "omibyte.io/blinky/sim"

type Options struct {
	// Board overrides the board named by the scenario.
	Board string

	// Settle overrides the settle mode named by the scenario.
	Settle string

	Scenario      sim.Scenario
	CyclesPerStep uint64
	TraceSize     int
	Environment   Env
}
