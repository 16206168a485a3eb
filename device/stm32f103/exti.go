package stm32f103

import "omibyte.io/blinky/volatile"

type AFIO_Type struct {
	EVCR   volatile.Register32
	MAPR   volatile.Register32
	EXTICR [4]volatile.Register32
	_      [4]byte
	MAPR2  volatile.Register32
}

// SetEXTISource routes EXTI line to port.
func (a *AFIO_Type) SetEXTISource(line uint8, port Port) {
	a.EXTICR[line/4].ReplaceBits(uint32(port), 0xF, (line%4)*4)
}

func (a *AFIO_Type) EXTISource(line uint8) Port {
	return Port(a.EXTICR[line/4].Field(0xF, (line%4)*4))
}

type EXTI_Type struct {
	IMR   volatile.Register32
	EMR   volatile.Register32
	RTSR  volatile.Register32
	FTSR  volatile.Register32
	SWIER volatile.Register32
	PR    volatile.Register32
}

func (e *EXTI_Type) SetInterruptMask(line uint8, enable bool) {
	setLine(&e.IMR, line, enable)
}

func (e *EXTI_Type) SetRisingTrigger(line uint8, enable bool) {
	setLine(&e.RTSR, line, enable)
}

func (e *EXTI_Type) SetFallingTrigger(line uint8, enable bool) {
	setLine(&e.FTSR, line, enable)
}

func (e *EXTI_Type) Pending(line uint8) bool {
	return e.PR.HasBits(1 << line)
}

// ClearPending clears the pending bit of line. PR is write-one-to-clear, so
// this is a plain write: a read-modify-write would clear every other pending
// line as well.
func (e *EXTI_Type) ClearPending(line uint8) {
	e.PR.Set(1 << line)
}

func setLine(reg *volatile.Register32, line uint8, enable bool) {
	if enable {
		reg.SetBits(1 << line)
	} else {
		reg.ClearBits(1 << line)
	}
}
