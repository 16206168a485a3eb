package runner

import (
	"fmt"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/blinky/boards"
)

type Env map[string]string

func Environment() Env {
	return map[string]string{
		"BLINKY_BOARD":    getenv("BLINKY_BOARD", boards.Default),
		"BLINKY_SCENARIO": getenv("BLINKY_SCENARIO", "idle"),
		"BLINKY_SETTLE":   getenv("BLINKY_SETTLE", "toggle"),
	}
}

func (e Env) Print() {
	for _, k := range e.keys() {
		fmt.Printf("set %s=%s\n", k, e[k])
	}
}

func (e Env) Value(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return ""
}

func (e Env) List() []string {
	var result []string
	for _, key := range e.keys() {
		result = append(result, fmt.Sprintf("%s=%s", key, e[key]))
	}
	return result
}

func (e Env) keys() []string {
	keys := maps.Keys(e)
	slices.Sort(keys)
	return keys
}

func getenv(key, _default string) (value string) {
	value = os.Getenv(key)
	if len(value) == 0 {
		value = _default
	}
	return value
}
