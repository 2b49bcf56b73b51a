// Package career runs a training career: a fixed number of turns in which each
// chosen action spends energy, shifts mood, sets conditions, or trains stats.
package career

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/dice"
	"github.com/cory-johannsen/umacareer/internal/game/mood"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
	"github.com/cory-johannsen/umacareer/internal/game/training"
)

// ErrCareerComplete is returned when an action is executed after the final turn.
var ErrCareerComplete = errors.New("career is already complete")

const (
	// DefaultMaxTurns is the length of a standard career.
	DefaultMaxTurns = 72
	skillsEnergy    = -10
	racesEnergy     = -30
)

// Config holds the tunable parameters of a career.
type Config struct {
	// ID identifies the career; a random UUID is generated when zero.
	ID uuid.UUID
	// MaxTurns is the last playable turn.
	MaxTurns int
	// StartingEnergy must lie in [0, trainee max energy].
	StartingEnergy int
	// Training configures the facility table and friendship gain.
	Training training.Options
}

// DefaultConfig returns a standard career configuration for a trainee with
// maxEnergy.
func DefaultConfig(maxEnergy int) Config {
	return Config{MaxTurns: DefaultMaxTurns, StartingEnergy: maxEnergy}
}

// Career is the career state machine. It is the only writer of turn, energy,
// mood, and conditions, and owns the training engine that writes stats.
//
// Invariant: 0 <= energy <= trainee.MaxEnergy(); once complete, no action is accepted.
type Career struct {
	id         uuid.UUID
	turn       int
	maxTurns   int
	energy     int
	mood       mood.Mood
	conditions *condition.Set
	complete   bool

	trainee  *trainee.Trainee
	training *training.Engine
	roller   *dice.Roller
	logger   *zap.Logger
}

var _ training.Career = (*Career)(nil)

// New starts a career for t at turn 1 with Normal mood and no conditions.
//
// Precondition: t, roller, and logger must be non-nil.
// Postcondition: Returns an active Career or an error for an invalid cfg.
func New(t *trainee.Trainee, roller *dice.Roller, logger *zap.Logger, cfg Config) (*Career, error) {
	if t == nil || roller == nil || logger == nil {
		panic("career.New: precondition violated: nil dependency")
	}
	if cfg.MaxTurns <= 0 {
		return nil, fmt.Errorf("max turns must be > 0, got %d", cfg.MaxTurns)
	}
	if cfg.StartingEnergy < 0 || cfg.StartingEnergy > t.MaxEnergy() {
		return nil, fmt.Errorf("starting energy must be 0-%d, got %d", t.MaxEnergy(), cfg.StartingEnergy)
	}
	id := cfg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	c := &Career{
		id:         id,
		turn:       1,
		maxTurns:   cfg.MaxTurns,
		energy:     cfg.StartingEnergy,
		mood:       mood.Normal,
		conditions: condition.NewSet(),
		trainee:    t,
		roller:     roller,
		logger:     logger.With(zap.String("career_id", id.String())),
	}
	engine, err := training.NewEngine(c, t, roller, c.logger, cfg.Training)
	if err != nil {
		return nil, err
	}
	c.training = engine
	return c, nil
}

// ID returns the career identifier.
func (c *Career) ID() uuid.UUID { return c.id }

// Trainee returns the trainee being developed.
func (c *Career) Trainee() *trainee.Trainee { return c.trainee }

// Training returns the career's training engine.
func (c *Career) Training() *training.Engine { return c.training }

// Energy returns the current energy.
func (c *Career) Energy() int { return c.energy }

// Mood returns the current mood.
func (c *Career) Mood() mood.Mood { return c.mood }

// Complete reports whether the final turn has been played.
func (c *Career) Complete() bool { return c.complete }

// AddEnergy adds delta to energy, clamped to [0, max energy].
func (c *Career) AddEnergy(delta int) {
	c.energy = max(0, min(c.trainee.MaxEnergy(), c.energy+delta))
}

// ChangeMood shifts mood by delta ranks, clamped to [Awful, Great].
func (c *Career) ChangeMood(delta int) {
	c.mood = c.mood.Change(delta)
}

// AddCondition sets condition id.
func (c *Career) AddCondition(id condition.ID) error {
	return c.conditions.Add(id)
}

// RemoveCondition clears condition id.
func (c *Career) RemoveCondition(id condition.ID) error {
	return c.conditions.Remove(id)
}

// HasCondition reports whether condition id is set.
func (c *Career) HasCondition(id condition.ID) bool {
	return c.conditions.Has(id)
}

// AvailableActions lists every action ExecuteAction currently accepts.
//
// Postcondition: Empty once the career is complete.
func (c *Career) AvailableActions() []Action {
	if c.complete {
		return nil
	}
	return Actions()
}

// State is a read-only snapshot of the career.
type State struct {
	ID         uuid.UUID             `json:"id"`
	Turn       int                   `json:"turn"`
	MaxTurns   int                   `json:"max_turns"`
	Energy     int                   `json:"energy"`
	MaxEnergy  int                   `json:"max_energy"`
	Mood       mood.Mood             `json:"mood"`
	Conditions map[condition.ID]bool `json:"conditions"`
	Stats      stat.Stats            `json:"stats"`
	Complete   bool                  `json:"complete"`
}

// State returns a snapshot that shares no memory with the career.
func (c *Career) State() State {
	return State{
		ID:         c.id,
		Turn:       c.turn,
		MaxTurns:   c.maxTurns,
		Energy:     c.energy,
		MaxEnergy:  c.trainee.MaxEnergy(),
		Mood:       c.mood,
		Conditions: c.conditions.Snapshot(),
		Stats:      c.trainee.CurrentStats(),
		Complete:   c.complete,
	}
}

// Result describes one executed action.
type Result struct {
	Action Action
	// Turn is the turn the action was played on.
	Turn int
	// EnergyGain is the energy restored by Rest before clamping.
	EnergyGain int
	NightOwl   bool
	// Recreation is set for the Recreation action only.
	Recreation RecreationOutcome
	ClawGame   bool
	// Training is set for training actions only.
	Training *training.Result
	// Complete reports whether this action ended the career.
	Complete bool
}

// ExecuteAction plays action a on the current turn and advances the turn.
//
// Postcondition: Returns ErrCareerComplete or an error wrapping
// ErrUnknownAction without mutating any state.
func (c *Career) ExecuteAction(a Action) (Result, error) {
	if c.complete {
		return Result{}, ErrCareerComplete
	}
	if !a.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
	}

	res := Result{Action: a, Turn: c.turn}
	switch a {
	case Rest:
		c.rest(&res)
	case Skills:
		c.AddEnergy(skillsEnergy)
	case Races:
		c.AddEnergy(racesEnergy)
	case Recreation:
		c.recreate(&res)
	default:
		f, _ := a.Facility()
		tr, err := c.training.Train(f)
		if err != nil {
			return Result{}, fmt.Errorf("training %s: %w", f, err)
		}
		res.Training = &tr
	}

	c.logger.Info("action executed",
		zap.Int("turn", c.turn),
		zap.String("action", string(a)),
		zap.Int("energy", c.energy),
		zap.String("mood", c.mood.String()),
	)
	c.advanceTurn()
	res.Complete = c.complete
	return res, nil
}

func (c *Career) advanceTurn() {
	c.turn++
	if c.turn > c.maxTurns {
		c.complete = true
		c.logger.Info("career complete", zap.Int("turns", c.maxTurns))
	}
}
