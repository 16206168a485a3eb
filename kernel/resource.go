package kernel

import "fmt"

// Shared is the untyped view of a resource used by the wiring table.
type Shared interface {
	Name() string
	Ceiling() Priority

	bind(k *Kernel)
	bound() *Kernel
	grant(task int)
}

// Resource is a cell of shared state guarded by a priority ceiling.
type Resource[T any] struct {
	name    string
	ceiling Priority
	value   T

	k      *Kernel
	access uint32
	open   bool
	claims uint64
}

func NewResource[T any](name string, ceiling Priority, initial T) *Resource[T] {
	return &Resource[T]{name: name, ceiling: ceiling, value: initial}
}

func (r *Resource[T]) Name() string {
	return r.name
}

func (r *Resource[T]) Ceiling() Priority {
	return r.ceiling
}

// Claims is the number of claims opened on r so far.
func (r *Resource[T]) Claims() uint64 {
	return r.claims
}

// Peek returns a copy of the value for an observer outside every task, such
// as a test harness or the idle loop.
func (r *Resource[T]) Peek() T {
	return r.value
}

// Claim runs body with exclusive access to the value of r. The caller's
// effective priority is raised to the ceiling for the duration of body and
// restored on every exit path. Work pended above the restored priority runs
// as soon as the claim is released.
func (r *Resource[T]) Claim(ctx *Context, body func(v *T)) {
	r.check(ctx)
	ctx.Step()

	prev := ctx.raise(r.ceiling)
	if r.open {
		ctx.restore(prev)
		panic(fmt.Errorf("%w: %s by %s", ErrResourceBusy, r.name, ctx.Name()))
	}
	r.open = true
	r.claims++
	ctx.k.trace(Event{Kind: EventClaimEnter, Resource: r.name})

	func() {
		defer func() {
			r.open = false
			ctx.restore(prev)
			ctx.k.trace(Event{Kind: EventClaimExit, Resource: r.name})
		}()
		body(&r.value)
	}()

	ctx.k.dispatch()
}

// Borrow gives direct access to the value of r to a context already running
// at or above its ceiling, where no claim is needed.
func (r *Resource[T]) Borrow(ctx *Context) *T {
	r.check(ctx)
	if ctx.threshold < r.ceiling {
		panic(fmt.Errorf("%w: %s at priority %d, ceiling %d", ErrBelowCeiling, r.name, ctx.threshold, r.ceiling))
	}
	if r.open {
		panic(fmt.Errorf("%w: %s by %s", ErrResourceBusy, r.name, ctx.Name()))
	}
	return &r.value
}

func (r *Resource[T]) check(ctx *Context) {
	if ctx.k != r.k {
		panic(fmt.Errorf("%w: %s is not bound to this kernel", ErrUndeclaredAccess, r.name))
	}
	// Init may touch every resource
	if ctx.task != nil && r.access&(1<<ctx.task.index) == 0 {
		panic(fmt.Errorf("%w: %s by %s", ErrUndeclaredAccess, r.name, ctx.task.Name))
	}
}

func (r *Resource[T]) bind(k *Kernel) {
	r.k = k
}

func (r *Resource[T]) bound() *Kernel {
	return r.k
}

func (r *Resource[T]) grant(task int) {
	r.access |= 1 << task
}
