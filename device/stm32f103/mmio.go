//go:build baremetal

package stm32f103

import "unsafe"

// Board returns the memory-mapped peripherals.
func Board() *Peripherals {
	return &Peripherals{
		RCC:   (*RCC_Type)(unsafe.Pointer(RCCBase)),
		AFIO:  (*AFIO_Type)(unsafe.Pointer(AFIOBase)),
		EXTI:  (*EXTI_Type)(unsafe.Pointer(EXTIBase)),
		GPIOA: (*GPIO_Type)(unsafe.Pointer(GPIOBase(PortA))),
		GPIOB: (*GPIO_Type)(unsafe.Pointer(GPIOBase(PortB))),
		GPIOC: (*GPIO_Type)(unsafe.Pointer(GPIOBase(PortC))),
	}
}
