//go:build baremetal

package cortexm

import "unsafe"

var (
	NVIC = (*NVIC_Type)(unsafe.Pointer(NVICBase))
	SCB  = (*SCB_Type)(unsafe.Pointer(SCBBase))
	SYST = (*SysTick_Type)(unsafe.Pointer(SysTickBase))
)
