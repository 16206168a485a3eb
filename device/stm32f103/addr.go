package stm32f103

// Base addresses of the APB2 and AHB peripherals.
const (
	AFIOBase  uintptr = 0x40010000
	EXTIBase  uintptr = 0x40010400
	GPIOABase uintptr = 0x40010800
	RCCBase   uintptr = 0x40021000
)

// GPIOBase returns the base address of port. Ports are 1 KiB apart.
func GPIOBase(port Port) uintptr {
	return GPIOABase + uintptr(port)*0x400
}
