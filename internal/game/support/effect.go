package support

import (
	"fmt"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// EffectType identifies a support effect as numbered by the upstream card data.
type EffectType int

const (
	FriendshipBonus        EffectType = 1
	MoodEffect             EffectType = 2
	SpeedBonus             EffectType = 3
	StaminaBonus           EffectType = 4
	PowerBonus             EffectType = 5
	GutsBonus              EffectType = 6
	WitBonus               EffectType = 7
	TrainingEffectiveness  EffectType = 8
	InitialSpeed           EffectType = 9
	InitialStamina         EffectType = 10
	InitialPower           EffectType = 11
	InitialGuts            EffectType = 12
	InitialWit             EffectType = 13
	InitialFriendshipGauge EffectType = 14
	RaceBonus              EffectType = 15
	FanBonus               EffectType = 16
	HintLevels             EffectType = 17
	HintFrequency          EffectType = 18
	SpecialtyPriority      EffectType = 19
	EventRecovery          EffectType = 25
	EventEffectiveness     EffectType = 26
	FailureProtection      EffectType = 27
	EnergyCostReduction    EffectType = 28
	SkillPointBonus        EffectType = 30
	WitFriendshipRecovery  EffectType = 31
)

var effectNames = map[EffectType]string{
	FriendshipBonus:        "Friendship Bonus",
	MoodEffect:             "Mood Effect",
	SpeedBonus:             "Speed Bonus",
	StaminaBonus:           "Stamina Bonus",
	PowerBonus:             "Power Bonus",
	GutsBonus:              "Guts Bonus",
	WitBonus:               "Wit Bonus",
	TrainingEffectiveness:  "Training Effectiveness",
	InitialSpeed:           "Initial Speed",
	InitialStamina:         "Initial Stamina",
	InitialPower:           "Initial Power",
	InitialGuts:            "Initial Guts",
	InitialWit:             "Initial Wit",
	InitialFriendshipGauge: "Initial Friendship Gauge",
	RaceBonus:              "Race Bonus",
	FanBonus:               "Fan Bonus",
	HintLevels:             "Hint Levels",
	HintFrequency:          "Hint Frequency",
	SpecialtyPriority:      "Specialty Priority",
	EventRecovery:          "Event Recovery",
	EventEffectiveness:     "Event Effectiveness",
	FailureProtection:      "Failure Protection",
	EnergyCostReduction:    "Energy Cost Reduction",
	SkillPointBonus:        "Skill Point Bonus",
	WitFriendshipRecovery:  "Wit Friendship Recovery",
}

// String returns the effect's display name; unmapped IDs render as "Unknown Effect N".
func (e EffectType) String() string {
	if n, ok := effectNames[e]; ok {
		return n
	}
	return fmt.Sprintf("Unknown Effect %d", int(e))
}

// StatBonusEffect returns the flat stat-bonus effect for s.
func StatBonusEffect(s stat.Stat) EffectType {
	return SpeedBonus + EffectType(s)
}

// InitialStatEffect returns the starting-stat effect for s.
func InitialStatEffect(s stat.Stat) EffectType {
	return InitialSpeed + EffectType(s)
}
