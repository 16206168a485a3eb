package runner

import (
	"errors"
	"reflect"
	"testing"

	"omibyte.io/blinky/boards"
)

func TestRegisters(t *testing.T) {
	tests := []struct {
		board    string
		expected []Register
	}{
		{
			"nucleo-f103rb",
			[]Register{
				{"RCC.APB2ENR", "0x40021018", "0x00000015"},
				{"GPIOA.CRL", "0x40010800", "0x44144444"},
				{"GPIOA.CRH", "0x40010804", "0x44444444"},
				{"GPIOA.ODR", "0x4001080C", "0x00000000"},
				{"GPIOC.CRL", "0x40011000", "0x44444444"},
				{"GPIOC.CRH", "0x40011004", "0x44444444"},
				{"GPIOC.ODR", "0x4001100C", "0x00000000"},
				{"AFIO.EXTICR4", "0x40010014", "0x00000020"},
				{"EXTI.IMR", "0x40010400", "0x00002000"},
				{"EXTI.RTSR", "0x40010408", "0x00000000"},
				{"EXTI.FTSR", "0x4001040C", "0x00002000"},
				{"NVIC.ISER1", "0xE000E104", "0x00000100"},
				{"NVIC.IPR10", "0xE000E428", "0x000000F0"},
				{"SCB.SHPR3", "0xE000ED20", "0xE0000000"},
				{"SYST.RVR", "0xE000E014", "0x0001387F"},
				{"SYST.CSR", "0xE000E010", "0x00000007"},
			},
		},
		{
			"bluepill",
			[]Register{
				{"RCC.APB2ENR", "0x40021018", "0x00000015"},
				{"GPIOC.CRL", "0x40011000", "0x44444444"},
				{"GPIOC.CRH", "0x40011004", "0x44144444"},
				{"GPIOC.ODR", "0x4001100C", "0x00000000"},
				{"GPIOA.CRL", "0x40010800", "0x44444448"},
				{"GPIOA.CRH", "0x40010804", "0x44444444"},
				{"GPIOA.ODR", "0x4001080C", "0x00000001"},
				{"AFIO.EXTICR1", "0x40010008", "0x00000000"},
				{"EXTI.IMR", "0x40010400", "0x00000001"},
				{"EXTI.RTSR", "0x40010408", "0x00000000"},
				{"EXTI.FTSR", "0x4001040C", "0x00000001"},
				{"NVIC.ISER0", "0xE000E100", "0x00000040"},
				{"NVIC.IPR1", "0xE000E404", "0x00F00000"},
				{"SCB.SHPR3", "0xE000ED20", "0xE0000000"},
				{"SYST.RVR", "0xE000E014", "0x0001387F"},
				{"SYST.CSR", "0xE000E010", "0x00000007"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.board, func(t *testing.T) {
			regs, err := Registers(tc.board)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(regs, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, regs)
			}
		})
	}

	if _, err := Registers("nope"); !errors.Is(err, boards.ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze("nucleo-f103rb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Tasks) != 2 || len(a.Resources) != 3 {
		t.Fatalf("unexpected analysis %+v", a)
	}
	if a.Tasks[1].Name != "button" || a.Tasks[1].IRQ != 40 {
		t.Errorf("unexpected button task %+v", a.Tasks[1])
	}
	for _, r := range a.Resources {
		if r.Ceiling != 2 || r.Required != 2 {
			t.Errorf("unexpected ceiling for %+v", r)
		}
	}
	if a.Resources[1].Name != "INTERVAL" || !reflect.DeepEqual(a.Resources[1].Tasks, []string{"button", "sys_tick"}) {
		t.Errorf("unexpected resource order %+v", a.Resources)
	}
}
