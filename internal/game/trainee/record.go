package trainee

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned when an upstream record omits a required field.
// It indicates the record schema has changed and is not recoverable.
var ErrMissingField = errors.New("required field missing")

// Record is the raw trainee record as stored by the record database.
// Pointer and slice fields are nil when the upstream JSON omits them.
type Record struct {
	CardID      *int     `json:"card_id"`
	Name        *string  `json:"name_en"`
	Rarity      *int     `json:"rarity"`
	TalentGroup *int     `json:"talent_group"`
	BaseStats   []int    `json:"base_stats"`
	StatBonus   []int    `json:"stat_bonus"`
	Aptitude    []string `json:"aptitude"`
}

func missing(field string) error {
	return fmt.Errorf("%w: %s - schema may have changed", ErrMissingField, field)
}

// validate reports the first required field absent from r.
func (r Record) validate() error {
	switch {
	case r.CardID == nil:
		return missing("card_id")
	case r.Name == nil:
		return missing("name_en")
	case r.Rarity == nil:
		return missing("rarity")
	case r.TalentGroup == nil:
		return missing("talent_group")
	case r.BaseStats == nil:
		return missing("base_stats")
	case r.StatBonus == nil:
		return missing("stat_bonus")
	case r.Aptitude == nil:
		return missing("aptitude")
	}
	return nil
}
