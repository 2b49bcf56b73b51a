package training

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
	"github.com/cory-johannsen/umacareer/internal/game/support"
)

const (
	// MaxLevel is the terminal facility level.
	MaxLevel = 5
	// UsesPerLevel is the number of successful trainings that level a facility up.
	UsesPerLevel = 4
)

// ErrUnknownFacility is returned for a facility identifier outside the closed stat set.
var ErrUnknownFacility = errors.New("unknown facility")

// FacilityDef is the fixed configuration of one training facility.
type FacilityDef struct {
	Stat stat.Stat
	// FailureThreshold is the raw number energy is subtracted from to get the failure rate.
	FailureThreshold int
	// EnergyCost is added to energy on success; negative consumes energy.
	EnergyCost int
	// Gains holds the base gain table for levels 1..MaxLevel.
	Gains [MaxLevel]stat.Stats
}

// Validate checks the definition's invariants.
func (d FacilityDef) Validate() error {
	if !d.Stat.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownFacility, d.Stat)
	}
	if d.FailureThreshold < 0 {
		return fmt.Errorf("facility %s: failure_threshold must be >= 0, got %d", d.Stat, d.FailureThreshold)
	}
	for i, g := range d.Gains {
		for _, k := range stat.All() {
			if g.Get(k) < 0 {
				return fmt.Errorf("facility %s: level %d %s gain must be >= 0", d.Stat, i+1, k)
			}
		}
		if g.Sum() == 0 {
			return fmt.Errorf("facility %s: level %d has no gains", d.Stat, i+1)
		}
	}
	return nil
}

// FailureRate returns clamp(0, 100, FailureThreshold - energy).
func (d FacilityDef) FailureRate(energy int) int {
	return max(0, min(100, d.FailureThreshold-energy))
}

// DefaultFacilities returns the standard facility table.
func DefaultFacilities() []FacilityDef {
	return []FacilityDef{
		{
			Stat: stat.Speed, FailureThreshold: 55, EnergyCost: -21,
			Gains: [MaxLevel]stat.Stats{
				{Speed: 10, Power: 5},
				{Speed: 11, Power: 5},
				{Speed: 12, Power: 5},
				{Speed: 13, Power: 6},
				{Speed: 14, Power: 7},
			},
		},
		{
			Stat: stat.Stamina, FailureThreshold: 53, EnergyCost: -19,
			Gains: [MaxLevel]stat.Stats{
				{Stamina: 9, Guts: 5},
				{Stamina: 10, Guts: 5},
				{Stamina: 11, Guts: 5},
				{Stamina: 12, Guts: 6},
				{Stamina: 13, Guts: 7},
			},
		},
		{
			Stat: stat.Power, FailureThreshold: 54, EnergyCost: -20,
			Gains: [MaxLevel]stat.Stats{
				{Power: 8, Stamina: 5},
				{Power: 9, Stamina: 5},
				{Power: 10, Stamina: 5},
				{Power: 11, Stamina: 6},
				{Power: 12, Stamina: 7},
			},
		},
		{
			Stat: stat.Guts, FailureThreshold: 56, EnergyCost: -22,
			Gains: [MaxLevel]stat.Stats{
				{Guts: 8, Speed: 4, Power: 4},
				{Guts: 9, Speed: 4, Power: 4},
				{Guts: 10, Speed: 4, Power: 4},
				{Guts: 11, Speed: 5, Power: 4},
				{Guts: 12, Speed: 6, Power: 5},
			},
		},
		{
			Stat: stat.Wisdom, FailureThreshold: 42, EnergyCost: 5,
			Gains: [MaxLevel]stat.Stats{
				{Wisdom: 9, Speed: 2},
				{Wisdom: 10, Speed: 2},
				{Wisdom: 11, Speed: 2},
				{Wisdom: 12, Speed: 3},
				{Wisdom: 13, Speed: 4},
			},
		},
	}
}

type facilityYAML struct {
	Stat             string       `yaml:"stat"`
	FailureThreshold int          `yaml:"failure_threshold"`
	EnergyCost       int          `yaml:"energy_cost"`
	Gains            []stat.Stats `yaml:"gains"`
}

type facilitiesFile struct {
	Facilities []facilityYAML `yaml:"facilities"`
}

// LoadFacilitiesFromBytes parses a facility table from YAML.
//
// Postcondition: Returns one validated definition per stat, or an error.
func LoadFacilitiesFromBytes(data []byte) ([]FacilityDef, error) {
	var file facilitiesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing facilities YAML: %w", err)
	}
	defs := make([]FacilityDef, 0, len(file.Facilities))
	for i, f := range file.Facilities {
		s, err := stat.ParseStat(f.Stat)
		if err != nil {
			return nil, fmt.Errorf("facilities[%d]: %w: %v", i, ErrUnknownFacility, err)
		}
		if len(f.Gains) != MaxLevel {
			return nil, fmt.Errorf("facility %s: gains must list %d levels, got %d", s, MaxLevel, len(f.Gains))
		}
		def := FacilityDef{Stat: s, FailureThreshold: f.FailureThreshold, EnergyCost: f.EnergyCost}
		copy(def.Gains[:], f.Gains)
		defs = append(defs, def)
	}
	if _, err := NewRegistry(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadFacilities reads a facility table from the YAML file at path.
//
// Precondition: path must be a readable file.
func LoadFacilities(path string) ([]FacilityDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	defs, err := LoadFacilitiesFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return defs, nil
}

// Facility is the live progression track for one stat.
//
// Invariant: 1 <= level <= MaxLevel; 0 <= usage < UsesPerLevel.
type Facility struct {
	def      FacilityDef
	level    int
	usage    int
	supports []*support.Support
}

// recordUse counts one successful training and reports whether the facility leveled up.
func (f *Facility) recordUse() bool {
	if f.level >= MaxLevel {
		return false
	}
	f.usage++
	if f.usage < UsesPerLevel {
		return false
	}
	f.level++
	f.usage = 0
	return true
}

// baseGains returns the gain table row for the current level.
func (f *Facility) baseGains() stat.Stats {
	return f.def.Gains[f.level-1]
}

// FacilityState is a read-only view of a Facility.
type FacilityState struct {
	Stat             stat.Stat
	Level            int
	Usage            int
	EnergyCost       int
	FailureThreshold int
	SupportIDs       []int
}

func (f *Facility) state() FacilityState {
	ids := make([]int, 0, len(f.supports))
	for _, s := range f.supports {
		ids = append(ids, s.ID)
	}
	return FacilityState{
		Stat:             f.def.Stat,
		Level:            f.level,
		Usage:            f.usage,
		EnergyCost:       f.def.EnergyCost,
		FailureThreshold: f.def.FailureThreshold,
		SupportIDs:       ids,
	}
}

// Registry holds exactly one Facility per stat.
type Registry struct {
	facilities [stat.Count]*Facility
}

// NewRegistry builds a Registry at level 1 from defs.
//
// Precondition: defs holds exactly one valid definition per stat.
// Postcondition: Returns a Registry or an error naming the first violation.
func NewRegistry(defs []FacilityDef) (*Registry, error) {
	r := &Registry{}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if r.facilities[d.Stat] != nil {
			return nil, fmt.Errorf("facility %s defined twice", d.Stat)
		}
		r.facilities[d.Stat] = &Facility{def: d, level: 1}
	}
	for _, k := range stat.All() {
		if r.facilities[k] == nil {
			return nil, fmt.Errorf("facility %s is not defined", k)
		}
	}
	return r, nil
}

// Get returns the Facility for s.
//
// Postcondition: Returns ErrUnknownFacility for an undefined stat.
func (r *Registry) Get(s stat.Stat) (*Facility, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFacility, s)
	}
	return r.facilities[s], nil
}
