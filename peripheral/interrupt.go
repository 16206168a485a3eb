package peripheral

// IRQ is an interrupt source number. Cortex-M system exceptions are negative
// (SysTick is -1), device interrupts start at 0.
type IRQ int16

// InterruptController is the part of the interrupt controller the kernel
// drives. Priorities are logical: a larger value is more urgent. The kernel
// mirrors its pending set through SetPending and ClearPending.
type InterruptController interface {
	EnableIRQ(irq IRQ)
	DisableIRQ(irq IRQ)
	SetPriority(irq IRQ, priority uint8)
	SetPending(irq IRQ)
	ClearPending(irq IRQ)
}
