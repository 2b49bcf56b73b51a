package trainee

import "fmt"

// Grade is an aptitude letter grade from S (best) to G (worst).
type Grade string

var grades = map[Grade]bool{"S": true, "A": true, "B": true, "C": true, "D": true, "E": true, "F": true, "G": true}

// SurfaceAptitudes grades the trainee on each track surface.
type SurfaceAptitudes struct {
	Turf Grade `json:"turf"`
	Dirt Grade `json:"dirt"`
}

// DistanceAptitudes grades the trainee on each race distance.
type DistanceAptitudes struct {
	Sprint Grade `json:"sprint"`
	Mile   Grade `json:"mile"`
	Medium Grade `json:"medium"`
	Long   Grade `json:"long"`
}

// StrategyAptitudes grades the trainee on each running strategy.
type StrategyAptitudes struct {
	FrontRunner Grade `json:"front_runner"`
	PaceChaser  Grade `json:"pace_chaser"`
	LateSurger  Grade `json:"late_surger"`
	EndCloser   Grade `json:"end_closer"`
}

// Aptitudes groups every aptitude grade of a trainee.
type Aptitudes struct {
	Surface  SurfaceAptitudes  `json:"surface"`
	Distance DistanceAptitudes `json:"distance"`
	Strategy StrategyAptitudes `json:"strategy"`
}

// parseAptitudes maps the record's ten-element grade array, ordered turf, dirt,
// sprint, mile, medium, long, front runner, pace chaser, late surger, end closer.
func parseAptitudes(raw []string) (Aptitudes, error) {
	if len(raw) != 10 {
		return Aptitudes{}, fmt.Errorf("aptitude must have 10 grades, got %d", len(raw))
	}
	g := make([]Grade, len(raw))
	for i, s := range raw {
		if !grades[Grade(s)] {
			return Aptitudes{}, fmt.Errorf("aptitude[%d]: invalid grade %q", i, s)
		}
		g[i] = Grade(s)
	}
	return Aptitudes{
		Surface:  SurfaceAptitudes{Turf: g[0], Dirt: g[1]},
		Distance: DistanceAptitudes{Sprint: g[2], Mile: g[3], Medium: g[4], Long: g[5]},
		Strategy: StrategyAptitudes{FrontRunner: g[6], PaceChaser: g[7], LateSurger: g[8], EndCloser: g[9]},
	}, nil
}
