package career

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// Policy chooses the next action for an unattended career.
//
// Precondition: c is not complete.
// Postcondition: Returns a valid action.
type Policy func(c *Career) Action

// DefaultMaxFailureRate is the highest failure rate an auto policy trains at.
const DefaultMaxFailureRate = 20

// Focus trains s while its failure rate stays at or below maxRate and rests otherwise.
func Focus(s stat.Stat, maxRate int) Policy {
	return func(c *Career) Action {
		rate, err := c.training.FailureRate(s)
		if err != nil || rate > maxRate {
			return Rest
		}
		return TrainAction(s)
	}
}

// Balanced trains the lowest current stat whose failure rate stays at or below
// maxRate; ties go to the earlier stat. It rests when no facility qualifies.
func Balanced(maxRate int) Policy {
	return func(c *Career) Action {
		current := c.trainee.CurrentStats()
		best, found := stat.Stat(0), false
		for _, s := range stat.All() {
			rate, err := c.training.FailureRate(s)
			if err != nil || rate > maxRate {
				continue
			}
			if !found || current.Get(s) < current.Get(best) {
				best, found = s, true
			}
		}
		if !found {
			return Rest
		}
		return TrainAction(best)
	}
}

// Policies returns the named auto policies.
func Policies(maxRate int) map[string]Policy {
	out := map[string]Policy{"balanced": Balanced(maxRate)}
	for _, s := range stat.All() {
		out[s.String()] = Focus(s, maxRate)
	}
	return out
}

// PolicyNames returns the names accepted by ParsePolicy in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, stat.Count+1)
	for name := range Policies(0) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParsePolicy resolves a policy by name, case-insensitively.
func ParsePolicy(name string, maxRate int) (Policy, error) {
	p, ok := Policies(maxRate)[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (valid: %s)", name, strings.Join(PolicyNames(), ", "))
	}
	return p, nil
}

// Play runs policy until the career completes and returns every result in order.
//
// Postcondition: c.Complete() is true on a nil error.
func Play(c *Career, policy Policy) ([]Result, error) {
	var results []Result
	for !c.complete {
		res, err := c.ExecuteAction(policy(c))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
