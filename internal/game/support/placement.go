package support

import "github.com/cory-johannsen/umacareer/internal/game/stat"

const (
	// BaseFacilityWeight is every facility's placement weight before bonuses.
	BaseFacilityWeight = 100
	// AbsentWeight is the placement weight of not appearing at all.
	AbsentWeight = 50
)

// Weights is a placement distribution: one weight per facility in stat order,
// followed by the weight of not appearing.
type Weights [stat.Count + 1]int

// Absent returns the no-appearance weight.
func (w Weights) Absent() int { return w[stat.Count] }

// Facility returns the weight of appearing at s.
func (w Weights) Facility(s stat.Stat) int { return w[s] }

// Total returns the sum of all weights.
func (w Weights) Total() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// Pick maps a draw r in [0, Total()) to an outcome. ok is false when the draw
// lands on no-appearance.
//
// Precondition: 0 <= r < Total().
func (w Weights) Pick(r int) (facility stat.Stat, ok bool) {
	for i, v := range w {
		if r < v {
			if i == stat.Count {
				return 0, false
			}
			return stat.Stat(i), true
		}
		r -= v
	}
	return 0, false
}

// PlacementWeights returns this support's placement distribution. The home
// facility's weight is raised by the SpecialtyPriority effect.
func (s *Support) PlacementWeights() Weights {
	var w Weights
	for _, k := range stat.All() {
		w[k] = BaseFacilityWeight
	}
	w[stat.Count] = AbsentWeight
	if s.hasHome {
		w[s.home] += s.effects[SpecialtyPriority]
	}
	return w
}
