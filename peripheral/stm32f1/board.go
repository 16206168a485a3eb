// Package stm32f1 implements peripheral.Board on STM32F1 registers.
package stm32f1

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"omibyte.io/blinky/boards"
	"omibyte.io/blinky/device/cortexm"
	"omibyte.io/blinky/device/stm32f103"
	"omibyte.io/blinky/peripheral"
)

type pin struct {
	port stm32f103.Port
	num  uint8
	gpio *stm32f103.GPIO_Type
}

type Board struct {
	p       *stm32f103.Peripherals
	systick *cortexm.SysTick_Type
	coreHz  physic.Frequency

	led    output
	button input
	latch  latch
}

// New binds a board definition to a set of register blocks.
func New(def boards.Board, p *stm32f103.Peripherals, systick *cortexm.SysTick_Type) (*Board, error) {
	coreHz, err := def.CoreHz()
	if err != nil {
		return nil, err
	}

	led, err := resolve(p, def.LED)
	if err != nil {
		return nil, fmt.Errorf("led: %w", err)
	}
	button, err := resolve(p, def.Button)
	if err != nil {
		return nil, fmt.Errorf("button: %w", err)
	}

	return &Board{
		p:       p,
		systick: systick,
		coreHz:  coreHz,
		led:     output(led),
		button:  input(button),
		latch:   latch{exti: p.EXTI, line: button.num},
	}, nil
}

func resolve(p *stm32f103.Peripherals, info boards.PinInfo) (pin, error) {
	port, err := info.PortIndex()
	if err != nil {
		return pin{}, err
	}
	if info.Pin > 15 {
		return pin{}, peripheral.ErrInvalidPinout
	}
	regs, err := p.GPIO(stm32f103.Port(port))
	if err != nil {
		return pin{}, err
	}
	return pin{port: stm32f103.Port(port), num: info.Pin, gpio: regs}, nil
}

// ButtonIRQ is the interrupt that serves the button's EXTI line.
func (b *Board) ButtonIRQ() peripheral.IRQ {
	irq, _ := stm32f103.EXTIIRQ(b.button.num)
	return irq
}

func (b *Board) TickIRQ() peripheral.IRQ {
	return cortexm.SysTick
}

func (b *Board) EnableClocks() {
	b.p.RCC.APB2ENR.SetIOPEN(b.led.port, true)
	b.p.RCC.APB2ENR.SetIOPEN(b.button.port, true)
	b.p.RCC.APB2ENR.SetAFIOEN(true)
}

func (b *Board) ConfigureLED() {
	b.led.gpio.Configure(b.led.num, stm32f103.ModeOutput10MHz, stm32f103.CnfPushPull)
}

func (b *Board) ConfigureButton(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.Float:
		b.button.gpio.Configure(b.button.num, stm32f103.ModeInput, stm32f103.CnfFloating)
	case gpio.PullUp, gpio.PullDown:
		b.button.gpio.Configure(b.button.num, stm32f103.ModeInput, stm32f103.CnfPullUpDown)
		// ODR selects the pull direction
		if pull == gpio.PullUp {
			b.button.gpio.ODR.SetBits(1 << b.button.num)
		} else {
			b.button.gpio.ODR.ClearBits(1 << b.button.num)
		}
	default:
		return fmt.Errorf("%w: pull %v", peripheral.ErrInvalidConfig, pull)
	}

	line := b.button.num
	switch edge {
	case gpio.FallingEdge:
		b.p.EXTI.SetFallingTrigger(line, true)
		b.p.EXTI.SetRisingTrigger(line, false)
	case gpio.RisingEdge:
		b.p.EXTI.SetFallingTrigger(line, false)
		b.p.EXTI.SetRisingTrigger(line, true)
	case gpio.BothEdges:
		b.p.EXTI.SetFallingTrigger(line, true)
		b.p.EXTI.SetRisingTrigger(line, true)
	default:
		return fmt.Errorf("%w: edge %v", peripheral.ErrInvalidConfig, edge)
	}
	b.p.AFIO.SetEXTISource(line, b.button.port)
	b.p.EXTI.SetInterruptMask(line, true)
	return nil
}

func (b *Board) ConfigureTick(rate physic.Frequency) error {
	if rate <= 0 || rate > b.coreHz {
		return fmt.Errorf("%w: %s", peripheral.ErrTickRange, rate)
	}
	cycles := uint64(b.coreHz / rate)
	if cycles == 0 || cycles-1 > cortexm.MaxReload {
		return fmt.Errorf("%w: %d cycles per tick", peripheral.ErrTickRange, cycles)
	}
	b.systick.Start(uint32(cycles - 1))
	return nil
}

func (b *Board) LED() peripheral.Output {
	return &b.led
}

func (b *Board) Button() peripheral.Input {
	return &b.button
}

func (b *Board) ButtonLatch() peripheral.EdgeLatch {
	return &b.latch
}

type output pin

func (o *output) Set(level gpio.Level) {
	if level == gpio.High {
		o.gpio.High(o.num)
	} else {
		o.gpio.Low(o.num)
	}
}

type input pin

func (i *input) Read() gpio.Level {
	return gpio.Level(i.gpio.Get(i.num))
}

type latch struct {
	exti *stm32f103.EXTI_Type
	line uint8
}

func (l *latch) Pending() bool {
	return l.exti.Pending(l.line)
}

func (l *latch) ClearPending() {
	l.exti.ClearPending(l.line)
}

var _ peripheral.Board = (*Board)(nil)
