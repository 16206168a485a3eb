package cortexm

// Base addresses of the core peripherals in the system control space.
const (
	SysTickBase uintptr = 0xE000E010
	NVICBase    uintptr = 0xE000E100
	SCBBase     uintptr = 0xE000ED00
)
