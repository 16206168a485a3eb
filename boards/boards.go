// Package boards holds the board definitions the firmware can be built for.
package boards

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

//go:embed boards.yaml
var rawBoards []byte

var boards Boards

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board definition")
)

const Default = "nucleo-f103rb"

type Boards []Board

type Board struct {
	Name         string  `yaml:"name"`
	Chip         string  `yaml:"chip"`
	CoreClock    string  `yaml:"coreClock"`
	TickRate     string  `yaml:"tickRate"`
	PriorityBits uint8   `yaml:"priorityBits"`
	LED          PinInfo `yaml:"led"`
	Button       PinInfo `yaml:"button"`
}

type PinInfo struct {
	Port string `yaml:"port"`
	Pin  uint8  `yaml:"pin"`
	Pull string `yaml:"pull"`
	Edge string `yaml:"edge"`
}

func All() Boards {
	return boards
}

func (b Boards) Names() []string {
	names := make([]string, len(b))
	for i, board := range b {
		names[i] = board.Name
	}
	slices.Sort(names)
	return names
}

func (b Boards) Find(name string) (Board, error) {
	i := slices.IndexFunc(b, func(board Board) bool {
		return board.Name == strings.ToLower(name) || board.Chip == strings.ToLower(name)
	})
	if i < 0 {
		return Board{}, fmt.Errorf("%w: %s", ErrBoardNotFound, name)
	}
	return b[i], nil
}

// Lookup finds a board by name or chip in the built-in table.
func Lookup(name string) (Board, error) {
	return boards.Find(name)
}

func (b Board) CoreHz() (physic.Frequency, error) {
	return parseFrequency(b.CoreClock)
}

func (b Board) TickHz() (physic.Frequency, error) {
	return parseFrequency(b.TickRate)
}

// TickCycles is the number of core cycles between two timer interrupts.
func (b Board) TickCycles() (uint64, error) {
	core, err := b.CoreHz()
	if err != nil {
		return 0, err
	}
	tick, err := b.TickHz()
	if err != nil {
		return 0, err
	}
	if tick <= 0 || tick > core {
		return 0, fmt.Errorf("%w: tick rate %s with core clock %s", ErrInvalidBoard, tick, core)
	}
	return uint64(core / tick), nil
}

// PortIndex returns the GPIO port number, A being 0.
func (p PinInfo) PortIndex() (uint8, error) {
	if len(p.Port) != 1 || p.Port[0] < 'A' || p.Port[0] > 'G' {
		return 0, fmt.Errorf("%w: port %q", ErrInvalidBoard, p.Port)
	}
	return p.Port[0] - 'A', nil
}

func (p PinInfo) PullMode() (gpio.Pull, error) {
	switch strings.ToLower(p.Pull) {
	case "", "float":
		return gpio.Float, nil
	case "up":
		return gpio.PullUp, nil
	case "down":
		return gpio.PullDown, nil
	}
	return gpio.PullNoChange, fmt.Errorf("%w: pull %q", ErrInvalidBoard, p.Pull)
}

func (p PinInfo) EdgeMode() (gpio.Edge, error) {
	switch strings.ToLower(p.Edge) {
	case "", "falling":
		return gpio.FallingEdge, nil
	case "rising":
		return gpio.RisingEdge, nil
	case "both":
		return gpio.BothEdges, nil
	}
	return gpio.NoEdge, fmt.Errorf("%w: edge %q", ErrInvalidBoard, p.Edge)
}

func (p PinInfo) String() string {
	return fmt.Sprintf("P%s%d", p.Port, p.Pin)
}

func parseFrequency(s string) (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(s); err != nil {
		return 0, errors.Join(ErrInvalidBoard, err)
	}
	return f, nil
}

func init() {
	var b struct {
		Elements []Board `yaml:"boards"`
	}
	if err := yaml.Unmarshal(rawBoards, &b); err != nil {
		panic(err)
	}

	boards = b.Elements
}
