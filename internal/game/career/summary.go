package career

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/mood"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// Summary is the persisted record of a career.
type Summary struct {
	ID          uuid.UUID  `json:"id"`
	TraineeID   int        `json:"trainee_id"`
	TraineeName string     `json:"trainee_name"`
	Turns       int        `json:"turns"`
	Complete    bool       `json:"complete"`
	BaseStats   stat.Stats `json:"base_stats"`
	FinalStats  stat.Stats `json:"final_stats"`
	// FacilityLevels holds each facility's level keyed by the stat it trains.
	FacilityLevels stat.Stats     `json:"facility_levels"`
	SupportIDs     []int          `json:"support_ids"`
	Mood           mood.Mood      `json:"mood"`
	Conditions     []condition.ID `json:"conditions"`
}

// Summary captures the career's current outcome.
func (c *Career) Summary() Summary {
	var levels stat.Stats
	for _, f := range c.training.Facilities() {
		levels.Set(f.Stat, f.Level)
	}
	supports := c.training.Supports()
	ids := make([]int, 0, len(supports))
	for _, s := range supports {
		ids = append(ids, s.ID)
	}
	return Summary{
		ID:             c.id,
		TraineeID:      c.trainee.ID,
		TraineeName:    c.trainee.Name,
		Turns:          c.turn - 1,
		Complete:       c.complete,
		BaseStats:      c.trainee.BaseStats(),
		FinalStats:     c.trainee.CurrentStats(),
		FacilityLevels: levels,
		SupportIDs:     ids,
		Mood:           c.mood,
		Conditions:     c.conditions.Active(),
	}
}
