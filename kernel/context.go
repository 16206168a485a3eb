package kernel

// Context is the execution context of a running task. It is only valid for
// the duration of the task body it was passed to.
type Context struct {
	k         *Kernel
	task      *taskSlot
	threshold Priority
}

// Name is the task name, empty during init.
func (c *Context) Name() string {
	if c.task == nil {
		return ""
	}
	return c.task.Name
}

// Priority is the static priority of the task.
func (c *Context) Priority() Priority {
	if c.task == nil {
		return MaxPriority
	}
	return c.task.Priority
}

// Threshold is the current effective priority, raised by open claims.
func (c *Context) Threshold() Priority {
	return c.threshold
}

// Step is an instruction boundary: the core may advance and anything pending
// above the threshold preempts.
func (c *Context) Step() {
	c.k.core.Step()
	c.k.dispatch()
}

// Pend pends irq from software. It preempts immediately when its task
// outranks this context.
func (c *Context) Pend(irq IRQ) {
	c.k.Pend(irq)
	c.k.dispatch()
}

func (c *Context) raise(ceiling Priority) Priority {
	prev := c.threshold
	if ceiling > prev {
		c.threshold = ceiling
		c.k.current = ceiling
	}
	return prev
}

func (c *Context) restore(prev Priority) {
	c.threshold = prev
	c.k.current = prev
}
