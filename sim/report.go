package sim

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a series of samples.
type Stats struct {
	N      int     `yaml:"n"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

func summarize(x []float64) Stats {
	s := Stats{N: len(x)}
	if len(x) == 0 {
		return s
	}
	s.Min, s.Max = floats.Min(x), floats.Max(x)
	if len(x) == 1 {
		s.Mean = x[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	return s
}

type Report struct {
	Elapsed time.Duration `yaml:"elapsed"`
	Ticks   uint64        `yaml:"ticks"`
	Presses int           `yaml:"presses"`
	Toggles int           `yaml:"toggles"`

	// HalfPeriods are the ticks between consecutive LED transitions, the
	// first one counted from reset.
	HalfPeriods []uint64 `yaml:"halfPeriods,flow"`
	HalfPeriod  Stats    `yaml:"halfPeriod"`

	Events  int    `yaml:"events"`
	Dropped uint64 `yaml:"dropped"`
}

func (m *Machine) Report() Report {
	r := Report{
		Elapsed: m.Now(),
		Ticks:   m.ticks,
		Presses: m.board.presses,
		Toggles: len(m.board.transitions),
		Events:  m.trace.Len(),
		Dropped: m.trace.Dropped(),
	}

	var last uint64
	samples := make([]float64, 0, len(m.board.transitions))
	for _, t := range m.board.transitions {
		r.HalfPeriods = append(r.HalfPeriods, t.Tick-last)
		samples = append(samples, float64(t.Tick-last))
		last = t.Tick
	}
	r.HalfPeriod = summarize(samples)
	return r
}
