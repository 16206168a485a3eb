// Package cortexm describes the Cortex-M core peripherals the firmware
// programs: the NVIC, the system control block and the SysTick timer.
package cortexm

import (
	"omibyte.io/blinky/peripheral"
	"omibyte.io/blinky/volatile"
)

const (
	SVCall  peripheral.IRQ = -5
	PendSV  peripheral.IRQ = -2
	SysTick peripheral.IRQ = -1
)

type NVIC_Type struct {
	ISER [16]volatile.Register32
	_    [64]byte
	ICER [16]volatile.Register32
	_    [64]byte
	ISPR [16]volatile.Register32
	_    [64]byte
	ICPR [16]volatile.Register32
	_    [320]byte
	IPR  [124]volatile.Register32
}

// Controller programs interrupt enables, pending bits and priorities for both
// device interrupts (NVIC) and system exceptions (SCB).
type Controller struct {
	NVIC *NVIC_Type
	SCB  *SCB_Type

	// PriorityBits is the number of implemented priority bits. The STM32F1
	// implements 4.
	PriorityBits uint8
}

// HardwarePriority converts a logical priority (larger is more urgent) to the
// value written to a priority register (smaller is more urgent).
func (c *Controller) HardwarePriority(logical uint8) uint8 {
	bits := c.PriorityBits
	if bits == 0 || bits > 8 {
		bits = 4
	}
	return uint8(((1 << bits) - uint32(logical)) << (8 - bits))
}

func (c *Controller) EnableIRQ(irq peripheral.IRQ) {
	if irq < 0 {
		// System exceptions are always enabled at the NVIC level
		return
	}
	c.NVIC.ISER[irq>>5].Set(1 << (irq & 0x1F))
}

func (c *Controller) DisableIRQ(irq peripheral.IRQ) {
	if irq < 0 {
		return
	}
	c.NVIC.ICER[irq>>5].Set(1 << (irq & 0x1F))
}

func (c *Controller) SetPriority(irq peripheral.IRQ, priority uint8) {
	hw := uint32(c.HardwarePriority(priority))
	if irq < 0 {
		exception := int(irq) + 16
		c.SCB.SHPR[(exception-4)/4].ReplaceBits(hw, 0xFF, uint8(exception%4)*8)
		return
	}
	c.NVIC.IPR[irq/4].ReplaceBits(hw, 0xFF, uint8(irq%4)*8)
}

func (c *Controller) Priority(irq peripheral.IRQ) uint8 {
	if irq < 0 {
		exception := int(irq) + 16
		return uint8(c.SCB.SHPR[(exception-4)/4].Field(0xFF, uint8(exception%4)*8))
	}
	return uint8(c.NVIC.IPR[irq/4].Field(0xFF, uint8(irq%4)*8))
}

// SetPending pends irq in software.
func (c *Controller) SetPending(irq peripheral.IRQ) {
	switch irq {
	case SysTick:
		c.SCB.ICSR.SetPENDSTSET(true)
	case PendSV:
		c.SCB.ICSR.SetPENDSVSET(true)
	default:
		if irq >= 0 {
			c.NVIC.ISPR[irq>>5].Set(1 << (irq & 0x1F))
		}
	}
}

func (c *Controller) ClearPending(irq peripheral.IRQ) {
	switch irq {
	case SysTick:
		c.SCB.ICSR.SetPENDSTCLR(true)
	case PendSV:
		c.SCB.ICSR.SetPENDSVCLR(true)
	default:
		if irq >= 0 {
			c.NVIC.ICPR[irq>>5].Set(1 << (irq & 0x1F))
		}
	}
}
