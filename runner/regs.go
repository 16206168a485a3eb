package runner

import (
	"fmt"
	"unsafe"

	"omibyte.io/blinky/blinky"
	"omibyte.io/blinky/boards"
	"omibyte.io/blinky/device/cortexm"
	"omibyte.io/blinky/device/stm32f103"
	"omibyte.io/blinky/kernel"
	"omibyte.io/blinky/peripheral/stm32f1"
	"omibyte.io/blinky/volatile"
)

// Register is one register word after init, at its address on the device.
type Register struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Value   string `yaml:"value"`
}

type registerBlocks struct {
	def     boards.Board
	p       *stm32f103.Peripherals
	nvic    *cortexm.NVIC_Type
	scb     *cortexm.SCB_Type
	systick *cortexm.SysTick_Type
}

// Registers runs the init sequence against in-memory register blocks of the
// named board and returns every word it wrote.
func Registers(boardName string) ([]Register, error) {
	app, regs, board, err := hardware(boardName)
	if err != nil {
		return nil, err
	}
	if err := app.Start(); err != nil {
		return nil, err
	}
	return regs.dump(board), nil
}

// Analyze reports the task and resource wiring of the firmware as built for
// the named board.
func Analyze(boardName string) (kernel.Analysis, error) {
	app, _, _, err := hardware(boardName)
	if err != nil {
		return kernel.Analysis{}, err
	}
	return app.Kernel().Analyze(), nil
}

func hardware(boardName string) (*blinky.App, registerBlocks, *stm32f1.Board, error) {
	var regs registerBlocks
	def, err := boards.Lookup(boardName)
	if err != nil {
		return nil, regs, nil, err
	}
	tickHz, err := def.TickHz()
	if err != nil {
		return nil, regs, nil, err
	}
	pull, err := def.Button.PullMode()
	if err != nil {
		return nil, regs, nil, err
	}
	edge, err := def.Button.EdgeMode()
	if err != nil {
		return nil, regs, nil, err
	}

	regs = registerBlocks{
		def:     def,
		p:       stm32f103.NewPeripherals(),
		nvic:    &cortexm.NVIC_Type{},
		scb:     &cortexm.SCB_Type{},
		systick: &cortexm.SysTick_Type{},
	}
	board, err := stm32f1.New(def, regs.p, regs.systick)
	if err != nil {
		return nil, regs, nil, err
	}

	app, err := blinky.New(blinky.Options{
		Board:    board,
		TickRate: tickHz,
		Pull:     pull,
		Edge:     edge,
		Controller: &cortexm.Controller{
			NVIC:         regs.nvic,
			SCB:          regs.scb,
			PriorityBits: def.PriorityBits,
		},
	})
	if err != nil {
		return nil, regs, nil, err
	}
	return app, regs, board, nil
}

func (r registerBlocks) dump(board *stm32f1.Board) []Register {
	var out []Register
	add := func(name string, base uintptr, block unsafe.Pointer, reg *volatile.Register32) {
		addr := base + uintptr(unsafe.Pointer(reg)) - uintptr(block)
		out = append(out, Register{
			Name:    name,
			Address: fmt.Sprintf("0x%08X", addr),
			Value:   fmt.Sprintf("0x%08X", reg.Get()),
		})
	}

	rcc := r.p.RCC
	add("RCC.APB2ENR", stm32f103.RCCBase, unsafe.Pointer(rcc), &rcc.APB2ENR.Register32)

	seen := map[string]bool{}
	for _, pin := range []boards.PinInfo{r.def.LED, r.def.Button} {
		if seen[pin.Port] {
			continue
		}
		seen[pin.Port] = true
		port, _ := pin.PortIndex()
		gpio, err := r.p.GPIO(stm32f103.Port(port))
		if err != nil {
			continue
		}
		base, block := stm32f103.GPIOBase(stm32f103.Port(port)), unsafe.Pointer(gpio)
		add("GPIO"+pin.Port+".CRL", base, block, &gpio.CRL)
		add("GPIO"+pin.Port+".CRH", base, block, &gpio.CRH)
		add("GPIO"+pin.Port+".ODR", base, block, &gpio.ODR)
	}

	line := r.def.Button.Pin
	afio, exti := r.p.AFIO, r.p.EXTI
	add(fmt.Sprintf("AFIO.EXTICR%d", line/4+1), stm32f103.AFIOBase, unsafe.Pointer(afio), &afio.EXTICR[line/4])
	add("EXTI.IMR", stm32f103.EXTIBase, unsafe.Pointer(exti), &exti.IMR)
	add("EXTI.RTSR", stm32f103.EXTIBase, unsafe.Pointer(exti), &exti.RTSR)
	add("EXTI.FTSR", stm32f103.EXTIBase, unsafe.Pointer(exti), &exti.FTSR)

	irq := board.ButtonIRQ()
	nvic := unsafe.Pointer(r.nvic)
	add(fmt.Sprintf("NVIC.ISER%d", irq/32), cortexm.NVICBase, nvic, &r.nvic.ISER[irq/32])
	add(fmt.Sprintf("NVIC.IPR%d", irq/4), cortexm.NVICBase, nvic, &r.nvic.IPR[irq/4])
	add("SCB.SHPR3", cortexm.SCBBase, unsafe.Pointer(r.scb), &r.scb.SHPR[2])

	syst := unsafe.Pointer(r.systick)
	add("SYST.RVR", cortexm.SysTickBase, syst, &r.systick.RVR.Register32)
	add("SYST.CSR", cortexm.SysTickBase, syst, &r.systick.CSR.Register32)
	return out
}
