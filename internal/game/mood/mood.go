// Package mood models the trainee's five-step morale scale.
package mood

import "fmt"

// Mood is an ordered morale rank. Awful is the lowest, Great the highest.
type Mood int

const (
	Awful Mood = iota - 2
	Bad
	Normal
	Good
	Great
)

// String returns the display name of m.
func (m Mood) String() string {
	switch m {
	case Awful:
		return "awful"
	case Bad:
		return "bad"
	case Normal:
		return "normal"
	case Good:
		return "good"
	case Great:
		return "great"
	}
	return fmt.Sprintf("mood(%d)", int(m))
}

// ParseMood maps a display name back to a Mood.
func ParseMood(name string) (Mood, error) {
	for m := Awful; m <= Great; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mood %q", name)
}

// Change returns m shifted by delta ranks, clamped to [Awful, Great].
//
// Postcondition: Awful <= result <= Great.
func (m Mood) Change(delta int) Mood {
	n := int(m) + delta
	if n < int(Awful) {
		return Awful
	}
	if n > int(Great) {
		return Great
	}
	return Mood(n)
}

// Multiplier returns the training gain multiplier contributed by m.
//
// Precondition: m is one of the five defined moods; any other value panics.
func (m Mood) Multiplier() float64 {
	switch m {
	case Great:
		return 0.2
	case Good:
		return 0.1
	case Normal:
		return 0
	case Bad:
		return -0.1
	case Awful:
		return -0.2
	}
	panic(fmt.Sprintf("mood: precondition violated: unhandled mood %d", int(m)))
}
