package support

import "math"

// noValue marks a breakpoint with no defined value in an effect growth array.
const noValue = -1

// milestone is a defined (level, value) breakpoint.
type milestone struct {
	level int
	value int
}

// breakpointLevel maps a growth-array index (1-based, after the effect ID) to
// its support level: index 1 is level 1, index i >= 2 is level (i-1)*5.
func breakpointLevel(i int) int {
	if i == 1 {
		return 1
	}
	return (i - 1) * 5
}

// Interpolate returns the effect value at level for a raw growth array of the
// form [effectID, v1, v5, v10, v15, ...], where -1 marks an undefined breakpoint.
//
// Postcondition: Returns 0 below the first defined breakpoint (or when none is
// defined), the final defined value at or beyond the final defined breakpoint,
// the exact breakpoint value at a breakpoint level, and otherwise the floor of
// the linear interpolation between the two surrounding defined breakpoints.
func Interpolate(growth []int, level int) int {
	var ms []milestone
	for i := 1; i < len(growth); i++ {
		if growth[i] == noValue {
			continue
		}
		ms = append(ms, milestone{level: breakpointLevel(i), value: growth[i]})
	}
	if len(ms) == 0 {
		return 0
	}
	last := ms[len(ms)-1]
	if level >= last.level {
		return last.value
	}
	if level < ms[0].level {
		return 0
	}
	for i := 0; i < len(ms)-1; i++ {
		lo, hi := ms[i], ms[i+1]
		if level < lo.level || level >= hi.level {
			continue
		}
		progress := float64(level-lo.level) / float64(hi.level-lo.level)
		return int(math.Floor(float64(lo.value) + float64(hi.value-lo.value)*progress))
	}
	return last.value
}
