package stm32f103

import "omibyte.io/blinky/volatile"

type RCC_Type struct {
	CR       volatile.Register32
	CFGR     volatile.Register32
	CIR      volatile.Register32
	APB2RSTR volatile.Register32
	APB1RSTR volatile.Register32
	AHBENR   volatile.Register32
	APB2ENR  RCC_APB2ENR
	APB1ENR  volatile.Register32
	BDCR     volatile.Register32
	CSR      volatile.Register32
}

type RCC_APB2ENR struct {
	volatile.Register32
}

const (
	APB2ENR_AFIOEN = 1 << 0
	APB2ENR_IOPAEN = 1 << 2
)

func (reg *RCC_APB2ENR) SetAFIOEN(enable bool) {
	reg.setMask(APB2ENR_AFIOEN, enable)
}

// SetIOPEN enables the bus clock of a GPIO port.
func (reg *RCC_APB2ENR) SetIOPEN(port Port, enable bool) {
	reg.setMask(APB2ENR_IOPAEN<<port, enable)
}

func (reg *RCC_APB2ENR) GetIOPEN(port Port) bool {
	return reg.HasBits(APB2ENR_IOPAEN << port)
}

func (reg *RCC_APB2ENR) setMask(mask uint32, enable bool) {
	if enable {
		reg.SetBits(mask)
	} else {
		reg.ClearBits(mask)
	}
}
