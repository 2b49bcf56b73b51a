package career

import (
	"fmt"

	"github.com/cory-johannsen/umacareer/internal/game/condition"
)

// Rest thresholds on a [0, 100) roll and the energy each band restores.
const (
	restPoorRoll   = 12.5
	restNormalRoll = 65
	restPoorGain   = 30
	restNormalGain = 50
	restGoodGain   = 70
	nightOwlOdds   = 5
)

func (c *Career) rest(res *Result) {
	roll := c.roller.Percent("rest")
	switch {
	case roll <= restPoorRoll:
		res.EnergyGain = restPoorGain
		if c.roller.Chance("rest:night-owl", nightOwlOdds) {
			c.mustAddCondition(condition.NightOwl)
			res.NightOwl = true
		}
	case roll <= restNormalRoll:
		res.EnergyGain = restNormalGain
	default:
		res.EnergyGain = restGoodGain
	}
	c.AddEnergy(res.EnergyGain)
}

// RecreationOutcome is the result band of a Recreation roll.
type RecreationOutcome int

const (
	NoRecreation RecreationOutcome = iota
	ShrineGreat
	ShrineGood
	ShrineNormal
	Stroll
	Karaoke
)

// String returns the outcome name.
func (r RecreationOutcome) String() string {
	switch r {
	case NoRecreation:
		return "none"
	case ShrineGreat:
		return "shrine (great)"
	case ShrineGood:
		return "shrine (good)"
	case ShrineNormal:
		return "shrine (normal)"
	case Stroll:
		return "stroll"
	case Karaoke:
		return "karaoke"
	default:
		return fmt.Sprintf("RecreationOutcome(%d)", int(r))
	}
}

type recreationBand struct {
	upTo    float64
	outcome RecreationOutcome
	energy  int
	mood    int
	claw    bool
}

// recreationBands are checked in order; a roll at or below upTo selects the band.
var recreationBands = []recreationBand{
	{upTo: 5, outcome: ShrineGreat, energy: 30, mood: 1, claw: true},
	{upTo: 15, outcome: ShrineGood, energy: 20, mood: 1, claw: true},
	{upTo: 35, outcome: ShrineNormal, energy: 10, mood: 1, claw: true},
	{upTo: 65, outcome: Stroll, energy: 10, mood: 1},
	{upTo: 100, outcome: Karaoke, mood: 2},
}

const (
	clawGameOdds   = 4
	clawGameMood   = 1
	clawGameEnergy = 10
)

func (c *Career) recreate(res *Result) {
	roll := c.roller.Percent("recreation")
	band := recreationBands[len(recreationBands)-1]
	for _, b := range recreationBands {
		if roll <= b.upTo {
			band = b
			break
		}
	}
	res.Recreation = band.outcome
	c.AddEnergy(band.energy)
	c.ChangeMood(band.mood)
	if band.claw && c.roller.Chance("recreation:claw-game", clawGameOdds) {
		res.ClawGame = true
		c.ChangeMood(clawGameMood)
		c.AddEnergy(clawGameEnergy)
	}
}

func (c *Career) mustAddCondition(id condition.ID) {
	if err := c.conditions.Add(id); err != nil {
		panic(fmt.Sprintf("career: precondition violated: %v", err))
	}
}
