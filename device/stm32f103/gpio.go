package stm32f103

import "omibyte.io/blinky/volatile"

type GPIO_Type struct {
	CRL  volatile.Register32
	CRH  volatile.Register32
	IDR  volatile.Register32
	ODR  volatile.Register32
	BSRR volatile.Register32
	BRR  volatile.Register32
	LCKR volatile.Register32
}

// Mode is the MODEy field of a port configuration nibble.
type Mode uint32

const (
	ModeInput Mode = iota
	ModeOutput10MHz
	ModeOutput2MHz
	ModeOutput50MHz
)

// Cnf is the CNFy field. Its meaning depends on Mode.
type Cnf uint32

const (
	// Output modes
	CnfPushPull Cnf = iota
	CnfOpenDrain
	CnfAltPushPull
	CnfAltOpenDrain
)

const (
	// Input mode
	CnfAnalog Cnf = iota
	CnfFloating
	CnfPullUpDown
)

// Configure sets the mode and configuration nibble of pin.
func (g *GPIO_Type) Configure(pin uint8, mode Mode, cnf Cnf) {
	reg := &g.CRL
	if pin >= 8 {
		reg = &g.CRH
	}
	reg.ReplaceBits(uint32(mode)|uint32(cnf)<<2, 0xF, (pin%8)*4)
}

// Config returns the mode and configuration of pin.
func (g *GPIO_Type) Config(pin uint8) (Mode, Cnf) {
	reg := &g.CRL
	if pin >= 8 {
		reg = &g.CRH
	}
	nibble := reg.Field(0xF, (pin%8)*4)
	return Mode(nibble & 0x3), Cnf(nibble >> 2)
}

// High drives pin high through the bit set/reset register.
func (g *GPIO_Type) High(pin uint8) {
	g.BSRR.Set(1 << pin)
}

// Low drives pin low through the bit set/reset register.
func (g *GPIO_Type) Low(pin uint8) {
	g.BSRR.Set(1 << (pin + 16))
}

func (g *GPIO_Type) Get(pin uint8) bool {
	return g.IDR.HasBits(1 << pin)
}
