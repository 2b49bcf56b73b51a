// Package trainee holds the trainee being developed over a career: identity,
// aptitudes, growth rates, and the stat ledger.
package trainee

import (
	"fmt"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// Trainee is the entity whose stats a career develops.
//
// Invariant: the base snapshot never changes after New; every current stat is
// at least 1 after any penalty.
type Trainee struct {
	ID          int
	Name        string
	Rarity      int
	TalentGroup int
	Aptitudes   Aptitudes

	base      stat.Stats
	current   stat.Stats
	growth    stat.Stats
	maxEnergy int
}

// New builds a Trainee from a raw record.
//
// Precondition: maxEnergy > 0.
// Postcondition: Returns a Trainee whose current stats equal its base stats, or
// an error wrapping ErrMissingField for an absent required field.
func New(rec Record, maxEnergy int) (*Trainee, error) {
	if err := rec.validate(); err != nil {
		return nil, err
	}
	if maxEnergy <= 0 {
		return nil, fmt.Errorf("trainee %d: max energy must be > 0, got %d", *rec.CardID, maxEnergy)
	}
	base, err := stat.FromSlice(rec.BaseStats)
	if err != nil {
		return nil, fmt.Errorf("trainee %d: base_stats: %w", *rec.CardID, err)
	}
	growth, err := stat.FromSlice(rec.StatBonus)
	if err != nil {
		return nil, fmt.Errorf("trainee %d: stat_bonus: %w", *rec.CardID, err)
	}
	for _, k := range stat.All() {
		if base.Get(k) < 0 {
			return nil, fmt.Errorf("trainee %d: base %s must not be negative", *rec.CardID, k)
		}
	}
	apt, err := parseAptitudes(rec.Aptitude)
	if err != nil {
		return nil, fmt.Errorf("trainee %d: %w", *rec.CardID, err)
	}
	return &Trainee{
		ID:          *rec.CardID,
		Name:        *rec.Name,
		Rarity:      *rec.Rarity,
		TalentGroup: *rec.TalentGroup,
		Aptitudes:   apt,
		base:        base,
		current:     base,
		growth:      growth,
		maxEnergy:   maxEnergy,
	}, nil
}

// BaseStats returns the stats the trainee started the career with.
func (t *Trainee) BaseStats() stat.Stats { return t.base }

// CurrentStats returns a copy of the current stat ledger.
func (t *Trainee) CurrentStats() stat.Stats { return t.current }

// MaxEnergy returns the trainee's energy cap.
func (t *Trainee) MaxEnergy() int { return t.maxEnergy }

// Growth returns the growth-rate percentage for s (e.g. 10 means +10%).
func (t *Trainee) Growth(s stat.Stat) int { return t.growth.Get(s) }

// ApplyGains adds gains to the current stats. Results below zero are clamped to zero.
func (t *Trainee) ApplyGains(gains stat.Stats) {
	for _, k := range stat.All() {
		v := t.current.Get(k) + gains.Get(k)
		if v < 0 {
			v = 0
		}
		t.current.Set(k, v)
	}
}

// Penalize lowers s by amount, never below 1.
//
// Postcondition: CurrentStats().Get(s) >= 1.
func (t *Trainee) Penalize(s stat.Stat, amount int) {
	t.SetStat(s, t.current.Get(s)-amount)
}

// SetStat replaces the current value of s, never below 1.
//
// Postcondition: CurrentStats().Get(s) >= 1.
func (t *Trainee) SetStat(s stat.Stat, v int) {
	if v < 1 {
		v = 1
	}
	t.current.Set(s, v)
}
