package cortexm

import "omibyte.io/blinky/volatile"

// SCB_Type is the system control block up to SHCSR.
type SCB_Type struct {
	CPUID volatile.Register32
	ICSR  SCB_ICSR
	VTOR  volatile.Register32
	AIRCR volatile.Register32
	SCR   volatile.Register32
	CCR   volatile.Register32
	SHPR  [3]volatile.Register32
	SHCSR volatile.Register32
}

type SCB_ICSR struct {
	volatile.Register32
}

func (reg *SCB_ICSR) GetPENDSVSET() bool {
	return reg.HasBits(0x1 << 28)
}

func (reg *SCB_ICSR) SetPENDSVSET(enable bool) {
	reg.setBit(28, enable)
}

func (reg *SCB_ICSR) SetPENDSVCLR(enable bool) {
	reg.setBit(27, enable)
}

func (reg *SCB_ICSR) GetPENDSTSET() bool {
	return reg.HasBits(0x1 << 26)
}

func (reg *SCB_ICSR) SetPENDSTSET(enable bool) {
	reg.setBit(26, enable)
}

func (reg *SCB_ICSR) SetPENDSTCLR(enable bool) {
	reg.setBit(25, enable)
}

func (reg *SCB_ICSR) setBit(bit uint8, enable bool) {
	if enable {
		reg.SetBits(0x1 << bit)
	} else {
		reg.ClearBits(0x1 << bit)
	}
}
