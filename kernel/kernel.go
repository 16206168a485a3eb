// Package kernel is a priority-ceiling scheduler for interrupt-driven tasks.
//
// Tasks are bound to interrupt sources with a static priority. Shared state
// lives in resources, each carrying a static ceiling: the highest priority of
// any task that accesses it. A claim raises the caller's effective priority
// to the ceiling for the duration of the access, which excludes every task
// that could interleave without ever blocking.
//
// The kernel models a single core. Preemption is a nested call on the
// current stack, taken at instruction boundaries: Context.Step, claim entry
// and release, Context.Pend, task return and idle wake-up.
package kernel

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"

	"omibyte.io/blinky/peripheral"
)

type Priority uint8

type IRQ = peripheral.IRQ

const (
	MaxTasks = 8

	IdlePriority Priority = 0
	MaxPriority  Priority = 15
)

// Task binds an interrupt source to a body. Resources lists the names of the
// resources the body may claim.
type Task struct {
	Name      string
	IRQ       IRQ
	Priority  Priority
	Resources []string
	Run       func(ctx *Context)
}

// Config is the static wiring table of an application.
type Config struct {
	Tasks     []Task
	Resources []Shared
}

// Core is the processor the kernel runs on.
type Core interface {
	// Step marks an instruction boundary. A simulated core advances its
	// clock here and may pend interrupts.
	Step()

	// WaitForInterrupt parks the core until an interrupt is pending. It
	// returns false once the core has halted.
	WaitForInterrupt() bool
}

type Options struct {
	Core       Core
	Controller peripheral.InterruptController
	Tracer     Tracer
}

type taskSlot struct {
	Task
	index   int
	enabled bool
	pending bool
	seq     uint64
	runs    uint64
}

type Kernel struct {
	tasks    [MaxTasks]taskSlot
	contexts [MaxTasks]Context
	ntasks   int

	resources []Shared
	access    *simple.DirectedGraph

	core       Core
	controller peripheral.InterruptController
	tracer     Tracer

	current Priority
	running *taskSlot
	seq     uint64
	started bool
}

// New validates cfg and binds its resources to a new kernel.
func New(cfg Config, opts Options) (*Kernel, error) {
	access, err := validate(cfg)
	if err != nil {
		return nil, err
	}

	k := &Kernel{
		ntasks:     len(cfg.Tasks),
		resources:  cfg.Resources,
		access:     access,
		core:       opts.Core,
		controller: opts.Controller,
		tracer:     opts.Tracer,
	}
	if k.core == nil {
		k.core = haltedCore{}
	}

	for i, task := range cfg.Tasks {
		k.tasks[i] = taskSlot{Task: task, index: i}
		k.contexts[i] = Context{k: k, task: &k.tasks[i]}
	}

	for i, res := range cfg.Resources {
		res.bind(k)
		for t := range cfg.Tasks {
			if access.HasEdgeFromTo(int64(t), resourceNode(len(cfg.Tasks), i)) {
				res.grant(t)
			}
		}
	}
	return k, nil
}

// Start programs the interrupt controller, enables every task source and
// runs setup with all interrupts masked. Interrupts pended during setup
// are taken as soon as it returns. If setup fails the kernel stays masked
// and never dispatches.
func (k *Kernel) Start(setup func(ctx *Context) error) error {
	if k.started {
		return ErrAlreadyStarted
	}

	for i := 0; i < k.ntasks; i++ {
		t := &k.tasks[i]
		if k.controller != nil {
			k.controller.SetPriority(t.IRQ, uint8(t.Priority))
			k.controller.EnableIRQ(t.IRQ)
		}
		t.enabled = true
	}

	k.started = true
	k.current = MaxPriority
	if setup != nil {
		if err := setup(&Context{k: k, threshold: MaxPriority}); err != nil {
			k.started = false
			return fmt.Errorf("init: %w", err)
		}
	}
	k.current = IdlePriority
	k.dispatch()
	return nil
}

// Run is the idle context: wait for an interrupt, dispatch, repeat. It
// returns when ctx is done or the core halts.
func (k *Kernel) Run(ctx context.Context) error {
	if !k.started {
		return ErrNotStarted
	}
	for {
		k.dispatch()
		if err := ctx.Err(); err != nil {
			return err
		}
		k.trace(Event{Kind: EventIdle})
		if !k.core.WaitForInterrupt() {
			return ErrHalted
		}
	}
}

// Pend latches irq pending. It is taken at the next instruction boundary if
// its task outranks the executing context. Sources without a task are
// ignored.
func (k *Kernel) Pend(irq IRQ) {
	t := k.lookup(irq)
	if t == nil {
		return
	}
	if !t.pending {
		t.pending = true
		k.seq++
		t.seq = k.seq
		if k.controller != nil {
			k.controller.SetPending(irq)
		}
	}
	k.trace(Event{Kind: EventPend, IRQ: irq})
}

func (k *Kernel) Unpend(irq IRQ) {
	if t := k.lookup(irq); t != nil {
		k.clear(t)
	}
}

func (k *Kernel) clear(t *taskSlot) {
	t.pending = false
	if k.controller != nil {
		k.controller.ClearPending(t.IRQ)
	}
}

func (k *Kernel) IsPending(irq IRQ) bool {
	t := k.lookup(irq)
	return t != nil && t.pending
}

// Enable allows irq to be dispatched again.
func (k *Kernel) Enable(irq IRQ) {
	t := k.lookup(irq)
	if t == nil {
		return
	}
	if k.controller != nil {
		k.controller.EnableIRQ(irq)
	}
	t.enabled = true
}

// Disable keeps irq from being dispatched. It still latches pending.
func (k *Kernel) Disable(irq IRQ) {
	t := k.lookup(irq)
	if t == nil {
		return
	}
	if k.controller != nil {
		k.controller.DisableIRQ(irq)
	}
	t.enabled = false
}

// Current is the effective priority of the executing context.
func (k *Kernel) Current() Priority {
	return k.current
}

// Runs reports how many times the task named name has been dispatched.
func (k *Kernel) Runs(name string) uint64 {
	for i := 0; i < k.ntasks; i++ {
		if k.tasks[i].Name == name {
			return k.tasks[i].runs
		}
	}
	return 0
}

func (k *Kernel) lookup(irq IRQ) *taskSlot {
	for i := 0; i < k.ntasks; i++ {
		if k.tasks[i].IRQ == irq {
			return &k.tasks[i]
		}
	}
	return nil
}

// next selects the pending task to take: highest priority above the
// executing context, earliest signal first among equals.
func (k *Kernel) next() *taskSlot {
	var best *taskSlot
	for i := 0; i < k.ntasks; i++ {
		t := &k.tasks[i]
		if !t.pending || !t.enabled || t.Priority <= k.current {
			continue
		}
		if best == nil || t.Priority > best.Priority || (t.Priority == best.Priority && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (k *Kernel) dispatch() {
	if !k.started {
		return
	}
	for t := k.next(); t != nil; t = k.next() {
		k.run(t)
	}
}

func (k *Kernel) run(t *taskSlot) {
	prevPriority, prevRunning := k.current, k.running
	defer func() {
		k.current, k.running = prevPriority, prevRunning
	}()

	k.clear(t)
	t.runs++
	k.current, k.running = t.Priority, t

	ctx := &k.contexts[t.index]
	ctx.threshold = t.Priority

	k.trace(Event{Kind: EventTaskEnter, IRQ: t.IRQ})
	t.Run(ctx)
	k.trace(Event{Kind: EventTaskExit, IRQ: t.IRQ})
}

func (k *Kernel) trace(e Event) {
	if k.tracer == nil {
		return
	}
	if k.running != nil {
		e.Task = k.running.Name
	}
	e.Priority = k.current
	k.tracer.Trace(e)
}

type haltedCore struct{}

func (haltedCore) Step() {}

func (haltedCore) WaitForInterrupt() bool {
	return false
}
