package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"omibyte.io/blinky/runner"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "--scenario", "press-then-fast", "--board", "", "--settle", "")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	var result struct {
		Scenario string `yaml:"scenario"`
		State    struct {
			Interval  uint32 `yaml:"interval"`
			Debounces uint64 `yaml:"debounces"`
		} `yaml:"state"`
		Report struct {
			Toggles int `yaml:"toggles"`
		} `yaml:"report"`
	}
	if err := yaml.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if result.Scenario != "press-then-fast" || result.State.Interval != 20 || result.Report.Toggles != 2 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRunList(t *testing.T) {
	out, err := execute(t, "run", "--list")
	runOpts.list = false
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"idle", "two-presses", "bounce"} {
		if !strings.Contains(out, name+"\n") {
			t.Errorf("scenario %s not listed:\n%s", name, out)
		}
	}
}

func TestRunUnknownScenario(t *testing.T) {
	if _, err := execute(t, "run", "--scenario", "nope"); err == nil {
		t.Error("expected an error for an unknown scenario")
	}
}

func TestRegs(t *testing.T) {
	out, err := execute(t, "regs", "--board", "nucleo-f103rb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var regs []runner.Register
	if err := yaml.Unmarshal([]byte(out), &regs); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if len(regs) == 0 || regs[0] != (runner.Register{Name: "RCC.APB2ENR", Address: "0x40021018", Value: "0x00000015"}) {
		t.Errorf("unexpected registers %v", regs)
	}
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--board", "bluepill")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "name: sys_tick") || !strings.Contains(out, "name: INTERVAL") {
		t.Errorf("unexpected analysis:\n%s", out)
	}

	if _, err := execute(t, "check", "--board", "nope"); err == nil {
		t.Error("expected an error for an unknown board")
	}
}
