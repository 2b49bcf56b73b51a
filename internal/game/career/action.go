package career

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// ErrUnknownAction is returned for an action outside the closed action set.
var ErrUnknownAction = errors.New("unknown action")

// Action identifies one turn-consuming choice. Training actions are named
// after the facility they train.
type Action string

const (
	Rest         Action = "rest"
	TrainSpeed   Action = "speed"
	TrainStamina Action = "stamina"
	TrainPower   Action = "power"
	TrainGuts    Action = "guts"
	TrainWisdom  Action = "wisdom"
	Skills       Action = "skills"
	Recreation   Action = "recreation"
	Races        Action = "races"
)

// Actions returns every action in menu order.
func Actions() []Action {
	return []Action{Rest, TrainSpeed, TrainStamina, TrainPower, TrainGuts, TrainWisdom, Skills, Recreation, Races}
}

// TrainAction returns the training action for facility s.
//
// Precondition: s.Valid().
func TrainAction(s stat.Stat) Action {
	if !s.Valid() {
		panic(fmt.Sprintf("career.TrainAction: precondition violated: undefined stat %d", int(s)))
	}
	return Action(s.String())
}

// Facility reports the facility a training action targets.
func (a Action) Facility() (stat.Stat, bool) {
	switch a {
	case TrainSpeed, TrainStamina, TrainPower, TrainGuts, TrainWisdom:
		s, err := stat.ParseStat(string(a))
		return s, err == nil
	}
	return 0, false
}

// Valid reports whether a is in the closed action set.
func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAction resolves a case-insensitive action name. Facility names accept
// the same aliases as stat.ParseStat, optionally prefixed with "train ".
//
// Postcondition: Returns a valid Action or an error wrapping ErrUnknownAction.
func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSpace(strings.TrimPrefix(n, "train "))
	if a := Action(n); a.Valid() {
		return a, nil
	}
	if s, err := stat.ParseStat(n); err == nil {
		return TrainAction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
