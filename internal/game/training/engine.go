// Package training resolves training actions against the facility registry:
// failure rates, success and failure branches, stat gains, and facility leveling.
package training

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/dice"
	"github.com/cory-johannsen/umacareer/internal/game/mood"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
	"github.com/cory-johannsen/umacareer/internal/game/support"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
)

// ErrSupportsAlreadyPlaced is returned by a second PlaceSupports call.
var ErrSupportsAlreadyPlaced = errors.New("supports already placed")

const (
	// DefaultFriendshipGain is the friendship each assigned support gains per successful training.
	DefaultFriendshipGain = 7

	normalFailurePenalty = 5
	worstFailurePenalty  = 10
	normalFailureMood    = -1
	worstFailureMood     = -3

	// Failure rates below this always take the normal branch; at or above
	// severeFailureRate they always take the worst branch.
	mildFailureRate   = 20
	severeFailureRate = 80
	// Between the two, a severity roll above this selects the normal branch.
	severityCutoff = 30

	normalPracticePoorRoll = 92
	worstPracticePoorRoll  = 50

	// supportDensityBonus is the flat gain bonus per assigned support.
	supportDensityBonus = 0.05

	// worstOtherStats is how many non-trained stats the worst branch penalizes.
	worstOtherStats = 2
)

// Career is the subset of career state the engine reads and mutates.
type Career interface {
	Energy() int
	Mood() mood.Mood
	AddEnergy(delta int)
	ChangeMood(delta int)
	AddCondition(id condition.ID) error
}

// Outcome classifies a resolved training attempt.
type Outcome int

const (
	Success Outcome = iota
	FailedNormal
	FailedWorst
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case FailedNormal:
		return "failed"
	case FailedWorst:
		return "failed badly"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes one resolved training attempt.
type Result struct {
	Facility    stat.Stat
	FailureRate int
	Roll        float64
	Outcome     Outcome
	// Gains is set on success only.
	Gains     stat.Stats
	LeveledUp bool
	Level     int
	// Penalized lists every stat reduced by a failure, trained stat first.
	Penalized    []stat.Stat
	PracticePoor bool
}

type placementState int

const (
	unplaced placementState = iota
	placed
)

// Options tunes an Engine. Zero values select defaults.
type Options struct {
	// Facilities overrides DefaultFacilities when non-empty.
	Facilities []FacilityDef
	// FriendshipGain overrides DefaultFriendshipGain when positive.
	FriendshipGain int
}

// Engine is the training engine of a single career.
type Engine struct {
	career         Career
	trainee        *trainee.Trainee
	roller         *dice.Roller
	logger         *zap.Logger
	registry       *Registry
	friendshipGain int
	placement      placementState
	supports       []*support.Support
}

// NewEngine builds an Engine with every facility at level 1 and no supports placed.
//
// Precondition: c, t, roller, and logger must be non-nil.
// Postcondition: Returns an Engine or an error for an invalid facility table.
func NewEngine(c Career, t *trainee.Trainee, roller *dice.Roller, logger *zap.Logger, opts Options) (*Engine, error) {
	if c == nil || t == nil || roller == nil || logger == nil {
		panic("training.NewEngine: precondition violated: nil dependency")
	}
	defs := opts.Facilities
	if len(defs) == 0 {
		defs = DefaultFacilities()
	}
	reg, err := NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("building facility registry: %w", err)
	}
	gain := opts.FriendshipGain
	if gain <= 0 {
		gain = DefaultFriendshipGain
	}
	return &Engine{
		career:         c,
		trainee:        t,
		roller:         roller,
		logger:         logger,
		registry:       reg,
		friendshipGain: gain,
	}, nil
}

// FailureRate returns clamp(0, 100, threshold - energy) for facility f.
//
// Postcondition: 0 <= rate <= 100, or ErrUnknownFacility.
func (e *Engine) FailureRate(f stat.Stat) (int, error) {
	fac, err := e.registry.Get(f)
	if err != nil {
		return 0, err
	}
	return fac.def.FailureRate(e.career.Energy()), nil
}

// TrainingGains computes the gains a successful training at f would apply now.
//
// Postcondition: Every returned value is >= 0, or ErrUnknownFacility.
func (e *Engine) TrainingGains(f stat.Stat) (stat.Stats, error) {
	fac, err := e.registry.Get(f)
	if err != nil {
		return stat.Stats{}, err
	}
	return e.gains(fac), nil
}

func (e *Engine) gains(fac *Facility) stat.Stats {
	base := fac.baseGains()

	var moodEffect, trainingEffect float64
	friendship := 1.0
	for _, s := range fac.supports {
		moodEffect += float64(s.EffectValue(support.MoodEffect)) / 100
		trainingEffect += float64(s.EffectValue(support.TrainingEffectiveness)) / 100
		friendship *= s.FriendshipMultiplier()
	}
	moodFactor := 1 + e.career.Mood().Multiplier()*(1+moodEffect)
	density := 1 + supportDensityBonus*float64(len(fac.supports))
	common := moodFactor * (1 + trainingEffect) * friendship * density

	var out stat.Stats
	for _, k := range base.NonZero() {
		amount := base.Get(k)
		for _, s := range fac.supports {
			amount += s.EffectValue(support.StatBonusEffect(k))
		}
		v := float64(amount) * common * (1 + float64(e.trainee.Growth(k))/100)
		out.Set(k, max(0, floor(v)))
	}
	return out
}

// floor truncates v toward negative infinity, tolerating float drift just
// below an integer.
func floor(v float64) int {
	return int(math.Floor(v + 1e-9))
}

// Train resolves one training attempt at facility f.
//
// Postcondition: On success, gains are applied, the facility records a use, the
// energy cost is applied, and assigned supports gain friendship. On failure,
// mood and stats are penalized and energy is unchanged.
func (e *Engine) Train(f stat.Stat) (Result, error) {
	fac, err := e.registry.Get(f)
	if err != nil {
		return Result{}, err
	}
	rate := fac.def.FailureRate(e.career.Energy())
	roll := e.roller.Percent("training:" + f.String())
	res := Result{Facility: f, FailureRate: rate, Roll: roll}

	if roll >= float64(rate) {
		e.succeed(fac, &res)
	} else {
		e.fail(fac, &res)
	}
	res.Level = fac.level

	e.logger.Debug("training resolved",
		zap.String("facility", f.String()),
		zap.Int("failure_rate", rate),
		zap.Float64("roll", roll),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("level", res.Level),
	)
	return res, nil
}

func (e *Engine) succeed(fac *Facility, res *Result) {
	res.Outcome = Success
	res.Gains = e.gains(fac)
	e.trainee.ApplyGains(res.Gains)
	res.LeveledUp = fac.recordUse()
	e.career.AddEnergy(fac.def.EnergyCost)
	for _, s := range fac.supports {
		s.AddFriendship(e.friendshipGain)
	}
}

func (e *Engine) fail(fac *Facility, res *Result) {
	res.Outcome = FailedNormal
	switch {
	case res.FailureRate < mildFailureRate:
	case res.FailureRate >= severeFailureRate:
		res.Outcome = FailedWorst
	default:
		if e.roller.Percent("training:failure-severity") <= severityCutoff {
			res.Outcome = FailedWorst
		}
	}

	trained := fac.def.Stat
	res.Penalized = []stat.Stat{trained}
	if res.Outcome == FailedNormal {
		e.career.ChangeMood(normalFailureMood)
		e.trainee.Penalize(trained, normalFailurePenalty)
		res.PracticePoor = e.roller.Percent("training:practice-poor") >= normalPracticePoorRoll
	} else {
		before := e.trainee.CurrentStats().Get(trained)
		e.career.ChangeMood(worstFailureMood)
		e.trainee.Penalize(trained, worstFailurePenalty)
		// Other stats are set from the trained stat's value, not their own.
		for _, other := range e.pickOthers(trained) {
			e.trainee.SetStat(other, before-worstFailurePenalty)
			res.Penalized = append(res.Penalized, other)
		}
		res.PracticePoor = e.roller.Percent("training:practice-poor") >= worstPracticePoorRoll
	}
	if res.PracticePoor {
		if err := e.career.AddCondition(condition.PracticePoor); err != nil {
			panic(fmt.Sprintf("training: precondition violated: %v", err))
		}
	}
}

// pickOthers draws worstOtherStats distinct stats other than trained.
func (e *Engine) pickOthers(trained stat.Stat) []stat.Stat {
	pool := make([]stat.Stat, 0, stat.Count-1)
	for _, k := range stat.All() {
		if k != trained {
			pool = append(pool, k)
		}
	}
	picked := make([]stat.Stat, 0, worstOtherStats)
	for range worstOtherStats {
		i := e.roller.Intn("training:worst-stat", len(pool))
		picked = append(picked, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return picked
}

// PlaceSupports assigns each support to at most one facility with a single
// weighted draw, then applies every support's initial stat effects. It moves
// the engine from unplaced to placed exactly once.
//
// Postcondition: Returns ErrSupportsAlreadyPlaced if called after a prior success.
func (e *Engine) PlaceSupports(supports []*support.Support) error {
	if e.placement == placed {
		return ErrSupportsAlreadyPlaced
	}
	for i, s := range supports {
		if s == nil {
			return fmt.Errorf("placing supports: supports[%d] is nil", i)
		}
	}
	var initial stat.Stats
	for _, s := range supports {
		w := s.PlacementWeights()
		f, ok := w.Pick(e.roller.Intn(fmt.Sprintf("placement:%d", s.ID), w.Total()))
		if ok {
			fac := e.registry.facilities[f]
			fac.supports = append(fac.supports, s)
		}
		for _, k := range stat.All() {
			initial.Add(k, s.EffectValue(support.InitialStatEffect(k)))
		}
		e.logger.Debug("support placed",
			zap.Int("support_id", s.ID),
			zap.Bool("appears", ok),
			zap.String("facility", placementName(f, ok)),
		)
	}
	e.trainee.ApplyGains(initial)
	e.supports = append(e.supports, supports...)
	e.placement = placed
	return nil
}

func placementName(f stat.Stat, ok bool) string {
	if !ok {
		return "none"
	}
	return f.String()
}

// Placed reports whether PlaceSupports has completed.
func (e *Engine) Placed() bool {
	return e.placement == placed
}

// Supports returns every placed support in placement order.
func (e *Engine) Supports() []*support.Support {
	return append([]*support.Support(nil), e.supports...)
}

// Facility returns a read-only view of facility f.
func (e *Engine) Facility(f stat.Stat) (FacilityState, error) {
	fac, err := e.registry.Get(f)
	if err != nil {
		return FacilityState{}, err
	}
	return fac.state(), nil
}

// Facilities returns a view of every facility in stat order.
func (e *Engine) Facilities() []FacilityState {
	out := make([]FacilityState, 0, stat.Count)
	for _, k := range stat.All() {
		out = append(out, e.registry.facilities[k].state())
	}
	return out
}
