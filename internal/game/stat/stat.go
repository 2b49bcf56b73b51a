// Package stat defines the closed set of trainable stats and the fixed-field
// stat record shared by the trainee, the facilities, and support effects.
package stat

import "fmt"

// Stat identifies one of the five trainable stats. Each stat also names the
// training facility that primarily raises it.
type Stat int

const (
	Speed Stat = iota
	Stamina
	Power
	Guts
	Wisdom
)

// Count is the number of trainable stats.
const Count = 5

var names = [Count]string{"speed", "stamina", "power", "guts", "wisdom"}

// All returns every stat in canonical order.
//
// Postcondition: len(result) == Count; the slice is a fresh allocation.
func All() []Stat {
	return []Stat{Speed, Stamina, Power, Guts, Wisdom}
}

// Valid reports whether s is one of the five defined stats.
func (s Stat) Valid() bool {
	return s >= Speed && s <= Wisdom
}

// String returns the lower-case stat name, or "stat(N)" for an undefined value.
func (s Stat) String() string {
	if !s.Valid() {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return names[s]
}

// ParseStat maps a stat name to its Stat. "wit" and "intelligence" are accepted
// as aliases for wisdom, matching the naming used by upstream records.
//
// Postcondition: Returns a valid Stat or a non-nil error.
func ParseStat(name string) (Stat, error) {
	switch name {
	case "speed":
		return Speed, nil
	case "stamina":
		return Stamina, nil
	case "power":
		return Power, nil
	case "guts":
		return Guts, nil
	case "wisdom", "wit", "intelligence":
		return Wisdom, nil
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// Stats holds one integer per stat.
type Stats struct {
	Speed   int `json:"speed" yaml:"speed"`
	Stamina int `json:"stamina" yaml:"stamina"`
	Power   int `json:"power" yaml:"power"`
	Guts    int `json:"guts" yaml:"guts"`
	Wisdom  int `json:"wisdom" yaml:"wisdom"`
}

// FromSlice builds Stats from a five-element slice ordered speed..wisdom.
//
// Postcondition: Returns an error unless len(values) == Count.
func FromSlice(values []int) (Stats, error) {
	if len(values) != Count {
		return Stats{}, fmt.Errorf("stat slice must have %d values, got %d", Count, len(values))
	}
	return Stats{
		Speed:   values[0],
		Stamina: values[1],
		Power:   values[2],
		Guts:    values[3],
		Wisdom:  values[4],
	}, nil
}

func (s *Stats) field(k Stat) *int {
	switch k {
	case Speed:
		return &s.Speed
	case Stamina:
		return &s.Stamina
	case Power:
		return &s.Power
	case Guts:
		return &s.Guts
	case Wisdom:
		return &s.Wisdom
	}
	panic(fmt.Sprintf("stat: precondition violated: undefined stat %d", int(k)))
}

// Get returns the value for k.
//
// Precondition: k.Valid().
func (s Stats) Get(k Stat) int {
	return *s.field(k)
}

// Set replaces the value for k.
//
// Precondition: k.Valid().
func (s *Stats) Set(k Stat, v int) {
	*s.field(k) = v
}

// Add adds delta to the value for k.
//
// Precondition: k.Valid().
func (s *Stats) Add(k Stat, delta int) {
	*s.field(k) += delta
}

// Plus returns the element-wise sum of s and o.
func (s Stats) Plus(o Stats) Stats {
	out := s
	for _, k := range All() {
		out.Add(k, o.Get(k))
	}
	return out
}

// Sum returns the total of all five values.
func (s Stats) Sum() int {
	return s.Speed + s.Stamina + s.Power + s.Guts + s.Wisdom
}

// NonZero returns the stats whose value is not zero, in canonical order.
func (s Stats) NonZero() []Stat {
	var out []Stat
	for _, k := range All() {
		if s.Get(k) != 0 {
			out = append(out, k)
		}
	}
	return out
}
