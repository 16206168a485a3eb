// Package sim is a host model of the blink board: a core clock that advances
// at every instruction boundary, a SysTick source, a button line with an
// edge latch and an LED output whose transitions are recorded.
package sim

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"

	"omibyte.io/blinky/kernel"
	"omibyte.io/blinky/peripheral"
	"omibyte.io/blinky/ringbuffer"
)

var (
	ErrWatchdog = errors.New("watchdog expired")
	ErrNoTarget = errors.New("machine has no interrupt target")
)

// Pender receives the interrupts the machine raises.
type Pender interface {
	Pend(irq kernel.IRQ)
}

type Config struct {
	CoreClock physic.Frequency

	// CyclesPerStep is the cost of one instruction boundary.
	CyclesPerStep uint64

	TickIRQ   kernel.IRQ
	ButtonIRQ kernel.IRQ

	// Ticks halts the machine at idle once that many timer interrupts have
	// been delivered. Zero runs until the timeline is exhausted.
	Ticks uint64

	// Watchdog is how many ticks past Ticks a busy task may run before the
	// machine gives up on it.
	Watchdog uint64

	Presses   []Press
	TraceSize int
}

// Press holds the button down at At for Hold.
type Press struct {
	At   time.Duration `yaml:"at"`
	Hold time.Duration `yaml:"hold"`
}

// Record is one trace event stamped with machine time.
type Record struct {
	Cycle uint64
	Tick  uint64
	kernel.Event
}

type edge struct {
	cycle uint64
	press bool
}

type Machine struct {
	cfg    Config
	hz     uint64
	target Pender
	board  *Board

	cycles uint64
	edges  []edge

	period   uint64
	nextTick uint64
	ticks    uint64

	priorities map[kernel.IRQ]uint8
	enabled    map[kernel.IRQ]bool
	pending    map[kernel.IRQ]bool

	trace *ringbuffer.RingBuffer[Record]
}

func New(cfg Config) (*Machine, error) {
	if cfg.CoreClock == 0 {
		cfg.CoreClock = 8 * physic.MegaHertz
	}
	if cfg.CoreClock < physic.Hertz {
		return nil, fmt.Errorf("%w: core clock %s", peripheral.ErrInvalidConfig, cfg.CoreClock)
	}
	if cfg.CyclesPerStep == 0 {
		cfg.CyclesPerStep = 100
	}
	if cfg.Watchdog == 0 {
		cfg.Watchdog = 1000
	}

	m := &Machine{
		cfg:        cfg,
		hz:         uint64(cfg.CoreClock / physic.Hertz),
		priorities: map[kernel.IRQ]uint8{},
		enabled:    map[kernel.IRQ]bool{},
		pending:    map[kernel.IRQ]bool{},
		trace:      ringbuffer.New[Record](cfg.TraceSize),
	}
	m.board = newBoard(m)

	for _, p := range cfg.Presses {
		if p.At < 0 || p.Hold <= 0 {
			return nil, fmt.Errorf("%w: press at %s held %s", peripheral.ErrInvalidConfig, p.At, p.Hold)
		}
		m.edges = append(m.edges,
			edge{cycle: m.Cycles(p.At), press: true},
			edge{cycle: m.Cycles(p.At + p.Hold)},
		)
	}
	sortEdges(m.edges)
	return m, nil
}

// Connect routes the machine's interrupts to p.
func (m *Machine) Connect(p Pender) {
	m.target = p
}

func (m *Machine) Board() *Board {
	return m.board
}

// Cycles converts a duration into core cycles.
func (m *Machine) Cycles(d time.Duration) uint64 {
	whole := uint64(d / time.Second)
	frac := uint64(d % time.Second)
	return whole*m.hz + frac*m.hz/uint64(time.Second)
}

// Now is the machine time.
func (m *Machine) Now() time.Duration {
	whole := m.cycles / m.hz
	frac := m.cycles % m.hz
	return time.Duration(whole)*time.Second + time.Duration(frac*uint64(time.Second)/m.hz)
}

func (m *Machine) Cycle() uint64 {
	return m.cycles
}

// Ticks is the number of timer interrupts delivered so far.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// Step advances the clock by one instruction boundary and raises whatever
// fell due.
func (m *Machine) Step() {
	if m.cfg.Ticks > 0 && m.ticks > m.cfg.Ticks+m.cfg.Watchdog {
		panic(fmt.Errorf("%w: busy for %d ticks past the end of the run", ErrWatchdog, m.ticks-m.cfg.Ticks))
	}
	m.advance(m.cycles + m.cfg.CyclesPerStep)
}

// WaitForInterrupt skips to the next event. It halts once the tick budget is
// spent or nothing is left to happen.
func (m *Machine) WaitForInterrupt() bool {
	if m.cfg.Ticks > 0 && m.ticks >= m.cfg.Ticks {
		return false
	}
	next, ok := m.next()
	if !ok {
		return false
	}
	m.advance(next)
	return true
}

func (m *Machine) next() (uint64, bool) {
	var next uint64
	ok := false
	if m.period > 0 {
		next, ok = m.nextTick, true
	}
	if len(m.edges) > 0 && (!ok || m.edges[0].cycle < next) {
		next, ok = m.edges[0].cycle, true
	}
	return next, ok
}

func (m *Machine) advance(to uint64) {
	for {
		next, ok := m.next()
		if !ok || next > to {
			break
		}
		m.cycles = next
		if m.period > 0 && next == m.nextTick {
			m.ticks++
			m.nextTick += m.period
			m.pend(m.cfg.TickIRQ)
			continue
		}
		e := m.edges[0]
		m.edges = m.edges[1:]
		m.board.press(e.press)
	}
	m.cycles = to
}

func (m *Machine) pend(irq kernel.IRQ) {
	if m.target == nil {
		panic(ErrNoTarget)
	}
	m.target.Pend(irq)
}

func (m *Machine) startTick(period uint64) {
	m.period = period
	m.nextTick = m.cycles + period
}

func (m *Machine) EnableIRQ(irq peripheral.IRQ) {
	m.enabled[irq] = true
}

func (m *Machine) DisableIRQ(irq peripheral.IRQ) {
	m.enabled[irq] = false
}

func (m *Machine) SetPriority(irq peripheral.IRQ, priority uint8) {
	m.priorities[irq] = priority
}

// Priority is the logical priority programmed for irq.
func (m *Machine) Priority(irq peripheral.IRQ) (uint8, bool) {
	p, ok := m.priorities[irq]
	return p, ok
}

func (m *Machine) Enabled(irq peripheral.IRQ) bool {
	return m.enabled[irq]
}

func (m *Machine) SetPending(irq peripheral.IRQ) {
	m.pending[irq] = true
}

func (m *Machine) ClearPending(irq peripheral.IRQ) {
	delete(m.pending, irq)
}

// Pending reports whether irq is latched in the controller and not yet taken.
func (m *Machine) Pending(irq peripheral.IRQ) bool {
	return m.pending[irq]
}

func (m *Machine) Trace(e kernel.Event) {
	m.trace.Write(Record{Cycle: m.cycles, Tick: m.ticks, Event: e})
}

// Drain removes the retained trace, oldest first, and starts a fresh one
// with the drop count cleared.
func (m *Machine) Drain() []Record {
	records := make([]Record, 0, m.trace.Len())
	for {
		r, err := m.trace.Read()
		if err != nil {
			break
		}
		records = append(records, r)
	}
	m.trace.Reset()
	return records
}

var (
	_ kernel.Core                    = (*Machine)(nil)
	_ kernel.Tracer                  = (*Machine)(nil)
	_ peripheral.InterruptController = (*Machine)(nil)
)
