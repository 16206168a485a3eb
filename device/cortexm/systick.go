package cortexm

import "omibyte.io/blinky/volatile"

type SysTick_Type struct {
	CSR   SYST_CSR
	RVR   SYST_RVR
	CVR   SYST_CVR
	CALIB volatile.Register32
}

type SYST_CSR struct {
	volatile.Register32
}

func (reg *SYST_CSR) SetENABLE(enable bool) {
	reg.setBit(0, enable)
}

func (reg *SYST_CSR) GetENABLE() bool {
	return reg.HasBits(0x1)
}

func (reg *SYST_CSR) SetTICKINT(enable bool) {
	reg.setBit(1, enable)
}

func (reg *SYST_CSR) GetTICKINT() bool {
	return reg.HasBits(0x1 << 1)
}

// SetCLKSOURCE selects the processor clock when enabled, the external
// reference clock otherwise.
func (reg *SYST_CSR) SetCLKSOURCE(enable bool) {
	reg.setBit(2, enable)
}

func (reg *SYST_CSR) GetCLKSOURCE() bool {
	return reg.HasBits(0x1 << 2)
}

func (reg *SYST_CSR) GetCOUNTFLAG() bool {
	return reg.HasBits(0x1 << 16)
}

func (reg *SYST_CSR) setBit(bit uint8, enable bool) {
	if enable {
		reg.SetBits(0x1 << bit)
	} else {
		reg.ClearBits(0x1 << bit)
	}
}

type SYST_RVR struct {
	volatile.Register32
}

// MaxReload is the largest value the 24-bit reload register holds.
const MaxReload = 0xFFFFFF

func (reg *SYST_RVR) SetRELOAD(value uint32) {
	reg.Set(value & MaxReload)
}

func (reg *SYST_RVR) GetRELOAD() uint32 {
	return reg.Get()
}

type SYST_CVR struct {
	volatile.Register32
}

// Clear resets the current value. Any write clears the register to zero.
func (reg *SYST_CVR) Clear() {
	reg.Set(0)
}

// Start programs the timer to interrupt every reload+1 processor cycles.
func (s *SysTick_Type) Start(reload uint32) {
	s.CSR.SetENABLE(false)
	s.RVR.SetRELOAD(reload)
	s.CVR.Clear()
	s.CSR.SetCLKSOURCE(true)
	s.CSR.SetTICKINT(true)
	s.CSR.SetENABLE(true)
}
