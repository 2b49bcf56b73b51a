package testutil

import "fmt"

// ScriptedSource is a dice.Source that replays queued values so tests can
// force specific roll outcomes. Once a queue is exhausted the source falls back
// to the highest possible draw: Float64 returns 0.999 and Intn returns n-1.
type ScriptedSource struct {
	floats []float64
	ints   []int
}

// NewScriptedSource returns an empty ScriptedSource.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{}
}

// Percents queues percent rolls in [0, 100); each is returned by Float64 as p/100.
func (s *ScriptedSource) Percents(p ...float64) *ScriptedSource {
	for _, v := range p {
		s.floats = append(s.floats, v/100)
	}
	return s
}

// Ints queues values for Intn.
func (s *ScriptedSource) Ints(v ...int) *ScriptedSource {
	s.ints = append(s.ints, v...)
	return s
}

// Remaining returns how many queued floats and ints have not been consumed.
func (s *ScriptedSource) Remaining() (floats, ints int) {
	return len(s.floats), len(s.ints)
}

// Float64 returns the next queued value.
func (s *ScriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.999
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// Intn returns the next queued value.
//
// Precondition: the queued value is in [0, n); otherwise Intn panics.
func (s *ScriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return n - 1
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("testutil: scripted int %d outside [0, %d)", v, n))
	}
	return v
}
