// Package stm32f103 describes the STM32F103 peripherals used by the blink
// firmware: reset and clock control, GPIO, alternate-function I/O and the
// external interrupt controller.
package stm32f103

import (
	"omibyte.io/blinky/peripheral"
)

const (
	IRQ_EXTI0     peripheral.IRQ = 6
	IRQ_EXTI9_5   peripheral.IRQ = 23
	IRQ_EXTI15_10 peripheral.IRQ = 40
)

// EXTIIRQ returns the interrupt that serves EXTI line.
func EXTIIRQ(line uint8) (peripheral.IRQ, error) {
	switch {
	case line <= 4:
		return IRQ_EXTI0 + peripheral.IRQ(line), nil
	case line <= 9:
		return IRQ_EXTI9_5, nil
	case line <= 15:
		return IRQ_EXTI15_10, nil
	}
	return 0, peripheral.ErrInvalidPinout
}

type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
)

// Peripherals groups the register blocks a board driver needs.
type Peripherals struct {
	RCC   *RCC_Type
	AFIO  *AFIO_Type
	EXTI  *EXTI_Type
	GPIOA *GPIO_Type
	GPIOB *GPIO_Type
	GPIOC *GPIO_Type
}

// NewPeripherals allocates in-memory register blocks with their reset values.
func NewPeripherals() *Peripherals {
	p := &Peripherals{
		RCC:   &RCC_Type{},
		AFIO:  &AFIO_Type{},
		EXTI:  &EXTI_Type{},
		GPIOA: &GPIO_Type{},
		GPIOB: &GPIO_Type{},
		GPIOC: &GPIO_Type{},
	}
	for _, gpio := range []*GPIO_Type{p.GPIOA, p.GPIOB, p.GPIOC} {
		// Every pin resets to floating input
		gpio.CRL.Set(0x44444444)
		gpio.CRH.Set(0x44444444)
	}
	return p
}

// GPIO returns the register block for port.
func (p *Peripherals) GPIO(port Port) (*GPIO_Type, error) {
	switch port {
	case PortA:
		return p.GPIOA, nil
	case PortB:
		return p.GPIOB, nil
	case PortC:
		return p.GPIOC, nil
	}
	return nil, peripheral.ErrInvalidPinout
}
