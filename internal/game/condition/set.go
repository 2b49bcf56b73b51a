package condition

import (
	"fmt"
	"sort"
)

// ID identifies one career condition.
type ID string

const (
	NightOwl        ID = "night_owl"
	Slacker         ID = "slacker"
	SkinOutbreak    ID = "skin_outbreak"
	SlowMetabolism  ID = "slow_metabolism"
	Migraine        ID = "migraine"
	PracticePoor    ID = "practice_poor"
	Charming        ID = "charming"
	HotTopic        ID = "hot_topic"
	PracticePerfect ID = "practice_perfect"
	FastLearner     ID = "fast_learner"
	ShiningBrightly ID = "shining_brightly"
)

// All returns every defined condition ID.
func All() []ID {
	return []ID{
		NightOwl, Slacker, SkinOutbreak, SlowMetabolism, Migraine, PracticePoor,
		Charming, HotTopic, PracticePerfect, FastLearner, ShiningBrightly,
	}
}

// exclusive maps a condition to the one it clears when applied.
var exclusive = map[ID]ID{
	PracticePerfect: PracticePoor,
	PracticePoor:    PracticePerfect,
}

// Set holds one boolean flag per defined condition, all initially false.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: PracticePerfect and PracticePoor are never both true.
type Set struct {
	flags map[ID]bool
}

// NewSet creates a Set with every defined condition cleared.
func NewSet() *Set {
	flags := make(map[ID]bool, len(All()))
	for _, id := range All() {
		flags[id] = false
	}
	return &Set{flags: flags}
}

// Add sets the flag for id. Adding PracticePerfect clears PracticePoor and
// adding PracticePoor clears PracticePerfect.
//
// Postcondition: Has(id) is true, or an error is returned for an undefined id.
func (s *Set) Add(id ID) error {
	if _, ok := s.flags[id]; !ok {
		return fmt.Errorf("unknown condition %q", id)
	}
	s.flags[id] = true
	if other, ok := exclusive[id]; ok {
		s.flags[other] = false
	}
	return nil
}

// Remove clears the flag for id.
//
// Postcondition: Has(id) is false, or an error is returned for an undefined id.
func (s *Set) Remove(id ID) error {
	if _, ok := s.flags[id]; !ok {
		return fmt.Errorf("unknown condition %q", id)
	}
	s.flags[id] = false
	return nil
}

// Has reports whether id is currently set. Undefined IDs are never set.
func (s *Set) Has(id ID) bool {
	return s.flags[id]
}

// Active returns the IDs currently set, sorted.
func (s *Set) Active() []ID {
	var out []ID
	for id, on := range s.flags {
		if on {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot returns a copy of every flag.
func (s *Set) Snapshot() map[ID]bool {
	out := make(map[ID]bool, len(s.flags))
	for id, on := range s.flags {
		out[id] = on
	}
	return out
}
