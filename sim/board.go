package sim

import (
	"fmt"

	"golang.org/x/exp/slices"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"omibyte.io/blinky/peripheral"
)

// maxReload matches the 24-bit SysTick reload register.
const maxReload = 1<<24 - 1

// Transition is one change of the LED output.
type Transition struct {
	Cycle uint64
	Tick  uint64
	Level gpio.Level
}

// Board is the simulated board. The button is idle at the level its pull
// holds it at and a press drives it to the other level.
type Board struct {
	m *Machine

	clocks     bool
	ledOut     bool
	buttonPull gpio.Pull
	buttonEdge gpio.Edge
	armed      bool

	led         gpio.Level
	transitions []Transition

	button  gpio.Level
	latch   bool
	presses int
}

func newBoard(m *Machine) *Board {
	return &Board{m: m, button: gpio.High, buttonEdge: gpio.NoEdge}
}

func (b *Board) EnableClocks() {
	b.clocks = true
}

func (b *Board) ConfigureLED() {
	b.ledOut = true
}

func (b *Board) ConfigureButton(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.Float, gpio.PullUp:
		b.button = gpio.High
	case gpio.PullDown:
		b.button = gpio.Low
	default:
		return fmt.Errorf("%w: pull %v", peripheral.ErrInvalidConfig, pull)
	}
	if edge == gpio.NoEdge || edge > gpio.BothEdges {
		return fmt.Errorf("%w: edge %v", peripheral.ErrInvalidConfig, edge)
	}
	b.buttonPull, b.buttonEdge = pull, edge
	b.armed = true
	return nil
}

func (b *Board) ConfigureTick(rate physic.Frequency) error {
	if rate <= 0 || rate > b.m.cfg.CoreClock {
		return fmt.Errorf("%w: %s", peripheral.ErrTickRange, rate)
	}
	cycles := uint64(b.m.cfg.CoreClock / rate)
	if cycles == 0 || cycles-1 > maxReload {
		return fmt.Errorf("%w: %d cycles per tick", peripheral.ErrTickRange, cycles)
	}
	b.m.startTick(cycles)
	return nil
}

func (b *Board) TickIRQ() peripheral.IRQ {
	return b.m.cfg.TickIRQ
}

func (b *Board) ButtonIRQ() peripheral.IRQ {
	return b.m.cfg.ButtonIRQ
}

func (b *Board) LED() peripheral.Output {
	return (*ledPin)(b)
}

func (b *Board) Button() peripheral.Input {
	return (*buttonPin)(b)
}

func (b *Board) ButtonLatch() peripheral.EdgeLatch {
	return (*buttonLatch)(b)
}

// Ready reports whether the init sequence configured everything.
func (b *Board) Ready() bool {
	return b.clocks && b.ledOut && b.armed && b.m.period > 0
}

// Transitions returns the LED output changes in order.
func (b *Board) Transitions() []Transition {
	return slices.Clone(b.transitions)
}

// Presses is the number of presses that reached the edge detector.
func (b *Board) Presses() int {
	return b.presses
}

func (b *Board) press(down bool) {
	level := gpio.High
	if b.buttonPull == gpio.PullDown {
		level = gpio.Low
	}
	if down {
		level = !level
	}
	if level == b.button {
		return
	}
	b.button = level

	edge := gpio.RisingEdge
	if level == gpio.Low {
		edge = gpio.FallingEdge
	}
	if !b.armed || (b.buttonEdge != gpio.BothEdges && b.buttonEdge != edge) {
		return
	}
	if down {
		b.presses++
	}
	b.latch = true
	b.m.pend(b.m.cfg.ButtonIRQ)
}

type ledPin Board

func (p *ledPin) Set(level gpio.Level) {
	if !p.ledOut || level == p.led {
		p.led = level
		return
	}
	p.led = level
	p.transitions = append(p.transitions, Transition{Cycle: p.m.cycles, Tick: p.m.ticks, Level: level})
}

type buttonPin Board

func (p *buttonPin) Read() gpio.Level {
	return p.button
}

type buttonLatch Board

func (l *buttonLatch) Pending() bool {
	return l.latch
}

func (l *buttonLatch) ClearPending() {
	l.latch = false
}

func sortEdges(edges []edge) {
	slices.SortStableFunc(edges, func(a, b edge) bool {
		return a.cycle < b.cycle
	})
}

var _ peripheral.Board = (*Board)(nil)
