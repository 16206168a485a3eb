package cortexm

import (
	"testing"
	"unsafe"

	"omibyte.io/blinky/peripheral"
)

func newController() *Controller {
	return &Controller{NVIC: &NVIC_Type{}, SCB: &SCB_Type{}, PriorityBits: 4}
}

func TestNVICLayout(t *testing.T) {
	var n NVIC_Type
	offsets := []struct {
		name     string
		offset   uintptr
		expected uintptr
	}{
		{"ICER", unsafe.Offsetof(n.ICER), 0x080},
		{"ISPR", unsafe.Offsetof(n.ISPR), 0x100},
		{"ICPR", unsafe.Offsetof(n.ICPR), 0x180},
		{"IPR", unsafe.Offsetof(n.IPR), 0x300},
	}
	for _, o := range offsets {
		if o.offset != o.expected {
			t.Errorf("%s: expected offset %#x, got %#x", o.name, o.expected, o.offset)
		}
	}

	var s SCB_Type
	if off := unsafe.Offsetof(s.SHPR); off != 0x18 {
		t.Errorf("SHPR: expected offset 0x18, got %#x", off)
	}
}

func TestPriorityRegisterAddress(t *testing.T) {
	const base = 0xE000E100
	c := newController()
	tests := []struct {
		irq      peripheral.IRQ
		expected uintptr
	}{
		{0, 0xE000E400},
		{6, 0xE000E404},
		{40, 0xE000E428},
	}
	for _, tc := range tests {
		c.SetPriority(tc.irq, 1)
		reg := &c.NVIC.IPR[tc.irq/4]
		addr := base + uintptr(unsafe.Pointer(reg)) - uintptr(unsafe.Pointer(c.NVIC))
		if addr != tc.expected {
			t.Errorf("IRQ %d: expected IPR word at %#x, got %#x", tc.irq, tc.expected, addr)
		}
		if got := reg.Field(0xFF, uint8(tc.irq%4)*8); got != 0xF0 {
			t.Errorf("IRQ %d: expected priority byte 0xf0, got %#x", tc.irq, got)
		}
	}
}

func TestHardwarePriority(t *testing.T) {
	c := newController()
	tests := []struct {
		logical  uint8
		expected uint8
	}{
		{1, 0xF0},
		{2, 0xE0},
		{15, 0x10},
	}
	for _, tc := range tests {
		if got := c.HardwarePriority(tc.logical); got != tc.expected {
			t.Errorf("logical %d: expected %#x, got %#x", tc.logical, tc.expected, got)
		}
	}
}

func TestControllerDeviceInterrupt(t *testing.T) {
	c := newController()
	const exti15_10 peripheral.IRQ = 40

	c.EnableIRQ(exti15_10)
	if got := c.NVIC.ISER[1].Get(); got != 1<<8 {
		t.Errorf("ISER[1]: expected %#x, got %#x", 1<<8, got)
	}

	c.DisableIRQ(exti15_10)
	if got := c.NVIC.ICER[1].Get(); got != 1<<8 {
		t.Errorf("ICER[1]: expected %#x, got %#x", 1<<8, got)
	}

	c.SetPriority(exti15_10, 1)
	if got := c.NVIC.IPR[10].Get(); got != 0xF0 {
		t.Errorf("IPR[10]: expected 0xf0, got %#x", got)
	}
	if got := c.Priority(exti15_10); got != 0xF0 {
		t.Errorf("Priority: expected 0xf0, got %#x", got)
	}

	c.SetPending(exti15_10)
	if got := c.NVIC.ISPR[1].Get(); got != 1<<8 {
		t.Errorf("ISPR[1]: expected %#x, got %#x", 1<<8, got)
	}
	c.ClearPending(exti15_10)
	if got := c.NVIC.ICPR[1].Get(); got != 1<<8 {
		t.Errorf("ICPR[1]: expected %#x, got %#x", 1<<8, got)
	}
}

func TestControllerSysTick(t *testing.T) {
	c := newController()

	c.EnableIRQ(SysTick)
	for i := range c.NVIC.ISER {
		if c.NVIC.ISER[i].Get() != 0 {
			t.Fatalf("system exception must not touch ISER[%d]", i)
		}
	}

	c.SetPriority(SysTick, 2)
	if got := c.SCB.SHPR[2].Get(); got != 0xE0<<24 {
		t.Errorf("SHPR3: expected %#x, got %#x", uint32(0xE0<<24), got)
	}
	if got := c.Priority(SysTick); got != 0xE0 {
		t.Errorf("Priority: expected 0xe0, got %#x", got)
	}

	c.SetPending(SysTick)
	if !c.SCB.ICSR.GetPENDSTSET() {
		t.Error("expected PENDSTSET")
	}
}

func TestSysTickStart(t *testing.T) {
	var s SysTick_Type
	s.CVR.Set(1234)
	s.Start(79_999)

	if got := s.RVR.GetRELOAD(); got != 79_999 {
		t.Errorf("expected reload 79999, got %d", got)
	}
	if s.CVR.Get() != 0 {
		t.Error("expected current value cleared")
	}
	if !s.CSR.GetENABLE() || !s.CSR.GetTICKINT() || !s.CSR.GetCLKSOURCE() {
		t.Errorf("unexpected CSR %#x", s.CSR.Get())
	}
	if got := s.CSR.Get(); got != 0x7 {
		t.Errorf("expected CSR 0x7, got %#x", got)
	}
}

func TestSysTickReloadTruncated(t *testing.T) {
	var s SysTick_Type
	s.RVR.SetRELOAD(0x1FFFFFF)
	if got := s.RVR.GetRELOAD(); got != MaxReload {
		t.Errorf("expected %#x, got %#x", MaxReload, got)
	}
}
