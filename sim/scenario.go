package sim

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

var ErrScenarioNotFound = errors.New("scenario not found")

// Scenario is a scripted run: which board, how long, and when the button is
// pressed. Settle and Intervals are passed through to the firmware.
type Scenario struct {
	Name      string    `yaml:"name"`
	Board     string    `yaml:"board"`
	Ticks     uint64    `yaml:"ticks"`
	Settle    string    `yaml:"settle"`
	Intervals Intervals `yaml:"intervals"`
	Presses   []Press   `yaml:"presses"`
	Expect    *Expect   `yaml:"expect"`
}

type Intervals struct {
	Normal uint32 `yaml:"normal"`
	Fast   uint32 `yaml:"fast"`
}

// Expect is the outcome a scenario asserts.
type Expect struct {
	Toggles     *int     `yaml:"toggles"`
	ToggleTicks []uint64 `yaml:"toggleTicks,flow"`
	Interval    *uint32  `yaml:"interval"`
	Debounces   *uint64  `yaml:"debounces"`
}

// ParseScenario decodes a scenario document.
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, err
	}
	if s.Ticks == 0 {
		return Scenario{}, fmt.Errorf("scenario %q: ticks must be set", s.Name)
	}
	return s, nil
}

// LoadScenario resolves name against the built-in scenarios first, then as
// a file path.
func LoadScenario(name string) (Scenario, error) {
	data, err := scenarioFS.ReadFile(path.Join("scenarios", name+".yaml"))
	if err != nil {
		data, err = os.ReadFile(name)
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
		}
	}
	s, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", name, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path.Base(name), ".yaml")
	}
	return s, nil
}

// Scenarios lists the built-in scenario names.
func Scenarios() []string {
	entries, err := scenarioFS.ReadDir("scenarios")
	if err != nil {
		panic(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}
