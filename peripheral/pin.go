package peripheral

import "periph.io/x/conn/v3/gpio"

// Output is a push-pull digital output.
type Output interface {
	Set(level gpio.Level)
}

// Input is a digital input.
type Input interface {
	Read() gpio.Level
}

// EdgeLatch is the pending flag an edge detector sets on a configured edge.
// It stays set until explicitly cleared.
type EdgeLatch interface {
	Pending() bool
	ClearPending()
}
