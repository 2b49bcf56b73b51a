// Package support models support companions: their level-scaled effect values,
// friendship gauge, and the weighted distribution deciding which facility they
// appear at.
package support

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// ErrMissingField is returned when a support record omits a required field.
// It indicates the record schema has changed and is not recoverable.
var ErrMissingField = errors.New("required field missing")

const (
	// MaxLevel is the highest support level.
	MaxLevel = 50
	// MaxFriendship caps the friendship gauge.
	MaxFriendship = 100
	// FriendshipThreshold is the gauge value at which the friendship bonus applies.
	FriendshipThreshold = 80
	// FriendType is the record type of supports with no home facility.
	FriendType = "friend"
)

// UniqueEffect is one effect of a support's unique bonus.
type UniqueEffect struct {
	Type  EffectType `json:"type"`
	Value int        `json:"value"`
}

// UniqueRecord is the unique bonus unlocked once the support reaches Level.
type UniqueRecord struct {
	Level   int            `json:"level"`
	Effects []UniqueEffect `json:"effects"`
}

// Record is the raw support record as stored by the record database.
type Record struct {
	SupportID *int          `json:"support_id"`
	Type      *string       `json:"type"`
	Effects   [][]int       `json:"effects"`
	Unique    *UniqueRecord `json:"unique,omitempty"`
}

func missing(field string) error {
	return fmt.Errorf("%w: %s - schema may have changed", ErrMissingField, field)
}

// Support is a support companion at a fixed level.
//
// Invariant: effect values are computed once by New and never change; only the
// friendship gauge mutates afterwards, staying within [0, MaxFriendship].
type Support struct {
	ID    int
	Level int

	home       stat.Stat
	hasHome    bool
	effects    map[EffectType]int
	friendship int
}

// New builds a Support at level from a raw record.
//
// Precondition: 1 <= level <= MaxLevel.
// Postcondition: Returns a Support with every effect resolved for level, or an
// error wrapping ErrMissingField for an absent required field.
func New(rec Record, level int) (*Support, error) {
	if rec.SupportID == nil {
		return nil, missing("support_id")
	}
	if rec.Type == nil {
		return nil, missing("type")
	}
	if rec.Effects == nil {
		return nil, missing("effects")
	}
	if level < 1 || level > MaxLevel {
		return nil, fmt.Errorf("support %d: level must be 1-%d, got %d", *rec.SupportID, MaxLevel, level)
	}

	s := &Support{
		ID:      *rec.SupportID,
		Level:   level,
		effects: make(map[EffectType]int, len(rec.Effects)),
	}
	if *rec.Type != FriendType {
		home, err := stat.ParseStat(*rec.Type)
		if err != nil {
			return nil, fmt.Errorf("support %d: type: %w", s.ID, err)
		}
		s.home, s.hasHome = home, true
	}

	for i, growth := range rec.Effects {
		if len(growth) < 2 {
			return nil, fmt.Errorf("support %d: effects[%d] must hold an id and at least one value", s.ID, i)
		}
		s.effects[EffectType(growth[0])] = Interpolate(growth, level)
	}
	if rec.Unique != nil && rec.Unique.Level <= level {
		s.applyUnique(rec.Unique.Effects)
	}

	s.friendship = clampFriendship(s.effects[InitialFriendshipGauge])
	return s, nil
}

// applyUnique overlays unique effects: values add to the base, except
// SpecialtyPriority, which scales the base by (100 + unique) percent.
func (s *Support) applyUnique(effects []UniqueEffect) {
	for _, e := range effects {
		base := s.effects[e.Type]
		if e.Type == SpecialtyPriority {
			s.effects[e.Type] = base * (100 + e.Value) / 100
			continue
		}
		s.effects[e.Type] = base + e.Value
	}
}

func clampFriendship(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxFriendship {
		return MaxFriendship
	}
	return v
}

// EffectValue returns the resolved value of effect t, or 0 if the support lacks it.
func (s *Support) EffectValue(t EffectType) int {
	return s.effects[t]
}

// Effects returns a copy of every resolved effect value.
func (s *Support) Effects() map[EffectType]int {
	out := make(map[EffectType]int, len(s.effects))
	for k, v := range s.effects {
		out[k] = v
	}
	return out
}

// Home returns the facility this support specialises in. Friend supports have none.
func (s *Support) Home() (stat.Stat, bool) {
	return s.home, s.hasHome
}

// Friendship returns the current friendship gauge.
func (s *Support) Friendship() int {
	return s.friendship
}

// AddFriendship raises the gauge by n.
//
// Postcondition: 0 <= Friendship() <= MaxFriendship.
func (s *Support) AddFriendship(n int) {
	s.friendship = clampFriendship(s.friendship + n)
}

// FriendshipMultiplier returns the training multiplier this support contributes:
// exactly 1 below FriendshipThreshold, otherwise 1 + FriendshipBonus/100.
func (s *Support) FriendshipMultiplier() float64 {
	if s.friendship < FriendshipThreshold {
		return 1
	}
	return 1 + float64(s.effects[FriendshipBonus])/100
}
