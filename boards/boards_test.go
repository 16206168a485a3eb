package boards

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		led  string
		err  error
	}{
		{"nucleo-f103rb", "PA5", nil},
		{"NUCLEO-F103RB", "PA5", nil},
		{"stm32f103c8", "PC13", nil},
		{"arduino-uno", "", ErrBoardNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Lookup(tc.name)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error %v, got %v", tc.err, err)
			}
			if err == nil && b.LED.String() != tc.led {
				t.Errorf("expected LED %s, got %s", tc.led, b.LED)
			}
		})
	}
}

func TestDefaultBoard(t *testing.T) {
	b, err := Lookup(Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	core, err := b.CoreHz()
	if err != nil || core != 8*physic.MegaHertz {
		t.Errorf("expected 8MHz core clock, got %v (%v)", core, err)
	}
	tick, err := b.TickHz()
	if err != nil || tick != 100*physic.Hertz {
		t.Errorf("expected 100Hz tick, got %v (%v)", tick, err)
	}
	cycles, err := b.TickCycles()
	if err != nil || cycles != 80_000 {
		t.Errorf("expected 80000 cycles per tick, got %d (%v)", cycles, err)
	}

	port, err := b.Button.PortIndex()
	if err != nil || port != 2 {
		t.Errorf("expected button on port C, got %d (%v)", port, err)
	}
	if edge, _ := b.Button.EdgeMode(); edge != gpio.FallingEdge {
		t.Errorf("expected falling edge, got %v", edge)
	}
	if pull, _ := b.Button.PullMode(); pull != gpio.Float {
		t.Errorf("expected floating input, got %v", pull)
	}
}

func TestInvalidBoard(t *testing.T) {
	b := Board{CoreClock: "8MHz", TickRate: "fast"}
	if _, err := b.TickCycles(); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("expected ErrInvalidBoard, got %v", err)
	}

	b.TickRate = "16MHz"
	if _, err := b.TickCycles(); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("expected ErrInvalidBoard for tick above core clock, got %v", err)
	}

	if _, err := (PinInfo{Port: "Z"}).PortIndex(); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("expected ErrInvalidBoard, got %v", err)
	}
	if _, err := (PinInfo{Pull: "sideways"}).PullMode(); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("expected ErrInvalidBoard, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := All().Names()
	if len(names) != 2 || names[0] != "bluepill" || names[1] != "nucleo-f103rb" {
		t.Errorf("unexpected board names %v", names)
	}
}
