package career_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/umacareer/internal/game/career"
	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/dice"
	"github.com/cory-johannsen/umacareer/internal/game/mood"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
	"github.com/cory-johannsen/umacareer/internal/game/support"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
	"github.com/cory-johannsen/umacareer/internal/game/training"
	"github.com/cory-johannsen/umacareer/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func newTrainee(t require.TestingT) *trainee.Trainee {
	tr, err := trainee.New(trainee.Record{
		CardID:      ptr(100101),
		Name:        ptr("Special Week"),
		Rarity:      ptr(3),
		TalentGroup: ptr(1001),
		BaseStats:   []int{83, 88, 77, 85, 67},
		StatBonus:   []int{0, 20, 0, 0, 10},
		Aptitude:    []string{"A", "G", "F", "C", "A", "A", "G", "A", "A", "C"},
	}, 100)
	require.NoError(t, err)
	return tr
}

func newCareer(t require.TestingT, src dice.Source, cfg career.Config) *career.Career {
	c, err := career.New(newTrainee(t), dice.NewLoggedRoller(src, zap.NewNop()), zap.NewNop(), cfg)
	require.NoError(t, err)
	return c
}

func TestNew_InitialState(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	s := c.State()
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, career.DefaultMaxTurns, s.MaxTurns)
	assert.Equal(t, 100, s.Energy)
	assert.Equal(t, 100, s.MaxEnergy)
	assert.Equal(t, mood.Normal, s.Mood)
	assert.False(t, s.Complete)
	assert.NotEqual(t, uuid.Nil, s.ID)
	for _, id := range condition.All() {
		assert.False(t, s.Conditions[id], string(id))
	}
	assert.Equal(t, stat.Stats{Speed: 83, Stamina: 88, Power: 77, Guts: 85, Wisdom: 67}, s.Stats)
}

func TestNew_InvalidConfig(t *testing.T) {
	roller := dice.NewLoggedRoller(testutil.NewScriptedSource(), zap.NewNop())
	_, err := career.New(newTrainee(t), roller, zap.NewNop(), career.Config{MaxTurns: 0, StartingEnergy: 50})
	assert.Error(t, err)
	_, err = career.New(newTrainee(t), roller, zap.NewNop(), career.Config{MaxTurns: 72, StartingEnergy: 101})
	assert.Error(t, err)
}

func TestNew_UsesConfiguredID(t *testing.T) {
	id := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	cfg := career.DefaultConfig(100)
	cfg.ID = id
	c := newCareer(t, testutil.NewScriptedSource(), cfg)
	assert.Equal(t, id, c.ID())
}

func TestRest_PoorRollGrantsNightOwl(t *testing.T) {
	cfg := career.Config{MaxTurns: 72, StartingEnergy: 40}
	c := newCareer(t, testutil.NewScriptedSource().Percents(10).Ints(0), cfg)

	res, err := c.ExecuteAction(career.Rest)
	require.NoError(t, err)
	assert.Equal(t, 30, res.EnergyGain)
	assert.True(t, res.NightOwl)
	assert.Equal(t, 70, c.Energy())
	assert.True(t, c.HasCondition(condition.NightOwl))
	assert.Equal(t, 2, c.State().Turn)
}

func TestRest_PoorRollWithoutNightOwl(t *testing.T) {
	cfg := career.Config{MaxTurns: 72, StartingEnergy: 40}
	c := newCareer(t, testutil.NewScriptedSource().Percents(10).Ints(3), cfg)

	res, err := c.ExecuteAction(career.Rest)
	require.NoError(t, err)
	assert.False(t, res.NightOwl)
	assert.Equal(t, 70, c.Energy())
	assert.False(t, c.HasCondition(condition.NightOwl))
}

func TestRest_Bands(t *testing.T) {
	cases := []struct {
		roll float64
		gain int
	}{
		{12.5, 30},
		{13, 50},
		{64.9, 50},
		{66, 70},
		{99, 70},
	}
	for _, tc := range cases {
		cfg := career.Config{MaxTurns: 72, StartingEnergy: 0}
		c := newCareer(t, testutil.NewScriptedSource().Percents(tc.roll).Ints(4), cfg)
		res, err := c.ExecuteAction(career.Rest)
		require.NoError(t, err)
		assert.Equal(t, tc.gain, res.EnergyGain, "roll %v", tc.roll)
		assert.Equal(t, tc.gain, c.Energy(), "roll %v", tc.roll)
	}
}

func TestRest_ClampsToMaxEnergy(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource().Percents(90), career.DefaultConfig(100))
	_, err := c.ExecuteAction(career.Rest)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Energy())
}

func TestRecreation_ShrineGreatWithClawGame(t *testing.T) {
	cfg := career.Config{MaxTurns: 72, StartingEnergy: 40}
	c := newCareer(t, testutil.NewScriptedSource().Percents(3).Ints(0), cfg)

	res, err := c.ExecuteAction(career.Recreation)
	require.NoError(t, err)
	assert.Equal(t, career.ShrineGreat, res.Recreation)
	assert.True(t, res.ClawGame)
	assert.Equal(t, 80, c.Energy(), "+30 shrine, +10 claw game")
	assert.Equal(t, mood.Great, c.Mood(), "+1 shrine, +1 claw game")
}

func TestRecreation_ShrineGreatWithoutClawGame(t *testing.T) {
	cfg := career.Config{MaxTurns: 72, StartingEnergy: 40}
	c := newCareer(t, testutil.NewScriptedSource().Percents(3).Ints(2), cfg)

	res, err := c.ExecuteAction(career.Recreation)
	require.NoError(t, err)
	assert.False(t, res.ClawGame)
	assert.Equal(t, 70, c.Energy())
	assert.Equal(t, mood.Good, c.Mood())
}

func TestRecreation_Bands(t *testing.T) {
	cases := []struct {
		roll    float64
		outcome career.RecreationOutcome
		energy  int
		mood    mood.Mood
	}{
		{4, career.ShrineGreat, 30, mood.Good},
		{10, career.ShrineGood, 20, mood.Good},
		{20, career.ShrineNormal, 10, mood.Good},
		{50, career.Stroll, 10, mood.Good},
		{80, career.Karaoke, 0, mood.Great},
	}
	for _, tc := range cases {
		cfg := career.Config{MaxTurns: 72, StartingEnergy: 0}
		// The scripted fallback draw never wins the claw game.
		c := newCareer(t, testutil.NewScriptedSource().Percents(tc.roll), cfg)
		res, err := c.ExecuteAction(career.Recreation)
		require.NoError(t, err)
		assert.Equal(t, tc.outcome, res.Recreation, "roll %v", tc.roll)
		assert.Equal(t, tc.energy, c.Energy(), "roll %v", tc.roll)
		assert.Equal(t, tc.mood, c.Mood(), "roll %v", tc.roll)
	}
}

func TestSkillsAndRaces_SpendEnergy(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	_, err := c.ExecuteAction(career.Skills)
	require.NoError(t, err)
	assert.Equal(t, 90, c.Energy())
	_, err = c.ExecuteAction(career.Races)
	require.NoError(t, err)
	assert.Equal(t, 60, c.Energy())
	for range 3 {
		_, err = c.ExecuteAction(career.Races)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, c.Energy())
}

func TestTrainAction_DelegatesToEngine(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource().Percents(50), career.DefaultConfig(100))
	res, err := c.ExecuteAction(career.TrainSpeed)
	require.NoError(t, err)
	require.NotNil(t, res.Training)
	assert.Equal(t, training.Success, res.Training.Outcome)
	assert.Equal(t, 79, c.Energy())
	assert.Equal(t, 93, c.State().Stats.Speed)
}

func TestTrainAction_FailureSetsPracticePoor(t *testing.T) {
	cfg := career.Config{MaxTurns: 72, StartingEnergy: 50}
	c := newCareer(t, testutil.NewScriptedSource().Percents(1, 95), cfg)
	require.NoError(t, c.AddCondition(condition.PracticePerfect))

	res, err := c.ExecuteAction(career.TrainSpeed)
	require.NoError(t, err)
	assert.Equal(t, training.FailedNormal, res.Training.Outcome)
	assert.True(t, c.HasCondition(condition.PracticePoor))
	assert.False(t, c.HasCondition(condition.PracticePerfect))
	assert.Equal(t, mood.Bad, c.Mood())
}

func TestExecuteAction_Unknown(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	_, err := c.ExecuteAction(career.Action("nap"))
	assert.ErrorIs(t, err, career.ErrUnknownAction)
	assert.Equal(t, 1, c.State().Turn, "unknown action consumes no turn")
}

func TestExecuteAction_CompletesAfterMaxTurns(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	for i := 1; i <= career.DefaultMaxTurns; i++ {
		res, err := c.ExecuteAction(career.Skills)
		require.NoError(t, err)
		assert.Equal(t, i, res.Turn)
		assert.Equal(t, i == career.DefaultMaxTurns, res.Complete)
	}
	assert.True(t, c.Complete())
	assert.True(t, c.State().Complete)
	assert.Empty(t, c.AvailableActions())

	before := c.State()
	_, err := c.ExecuteAction(career.Rest)
	assert.ErrorIs(t, err, career.ErrCareerComplete)
	assert.Equal(t, before, c.State(), "rejected action mutates nothing")
}

func TestAvailableActions_Active(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	assert.Equal(t, career.Actions(), c.AvailableActions())
}

func TestConditions_AddRemove(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	require.NoError(t, c.AddCondition(condition.Charming))
	assert.True(t, c.HasCondition(condition.Charming))
	require.NoError(t, c.RemoveCondition(condition.Charming))
	assert.False(t, c.HasCondition(condition.Charming))
	assert.Error(t, c.AddCondition(condition.ID("sleepy")))
}

func TestState_IsSnapshot(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource(), career.DefaultConfig(100))
	s := c.State()
	s.Conditions[condition.Charming] = true
	assert.False(t, c.HasCondition(condition.Charming))
}

func TestSummary(t *testing.T) {
	c := newCareer(t, testutil.NewScriptedSource().Ints(0), career.DefaultConfig(100))
	s, err := support.New(support.Record{
		SupportID: ptr(30028),
		Type:      ptr("speed"),
		Effects:   [][]int{{int(support.InitialSpeed), 20}},
	}, 50)
	require.NoError(t, err)
	require.NoError(t, c.Training().PlaceSupports([]*support.Support{s}))

	for range 4 {
		_, err := c.ExecuteAction(career.TrainSpeed)
		require.NoError(t, err)
	}
	sum := c.Summary()
	assert.Equal(t, c.ID(), sum.ID)
	assert.Equal(t, 100101, sum.TraineeID)
	assert.Equal(t, 4, sum.Turns)
	assert.False(t, sum.Complete)
	assert.Equal(t, []int{30028}, sum.SupportIDs)
	assert.Equal(t, stat.Stats{Speed: 2, Stamina: 1, Power: 1, Guts: 1, Wisdom: 1}, sum.FacilityLevels)
	assert.Equal(t, 83, sum.BaseStats.Speed)
	assert.Greater(t, sum.FinalStats.Speed, 103)
}

func TestParseAction(t *testing.T) {
	cases := map[string]career.Action{
		"rest":        career.Rest,
		" Recreation": career.Recreation,
		"speed":       career.TrainSpeed,
		"train guts":  career.TrainGuts,
		"wit":         career.TrainWisdom,
	}
	for in, want := range cases {
		got, err := career.ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := career.ParseAction("nap")
	assert.ErrorIs(t, err, career.ErrUnknownAction)
}

func TestAction_Facility(t *testing.T) {
	for _, s := range stat.All() {
		f, ok := career.TrainAction(s).Facility()
		assert.True(t, ok)
		assert.Equal(t, s, f)
	}
	_, ok := career.Rest.Facility()
	assert.False(t, ok)
}

func TestPropertyCareer_InvariantsHold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		c := newCareer(rt, dice.NewSeededSource(seed), career.DefaultConfig(100))
		actions := rapid.SliceOfN(rapid.SampledFrom(career.Actions()), 1, career.DefaultMaxTurns).Draw(rt, "actions")
		for _, a := range actions {
			_, err := c.ExecuteAction(a)
			require.NoError(rt, err)
			s := c.State()
			assert.GreaterOrEqual(rt, s.Mood, mood.Awful)
			assert.LessOrEqual(rt, s.Mood, mood.Great)
			assert.GreaterOrEqual(rt, s.Energy, 0)
			assert.LessOrEqual(rt, s.Energy, s.MaxEnergy)
			assert.False(rt, s.Conditions[condition.PracticePerfect] && s.Conditions[condition.PracticePoor])
			for _, k := range stat.All() {
				assert.GreaterOrEqual(rt, s.Stats.Get(k), 1)
			}
		}
		assert.Equal(rt, len(actions)+1, c.State().Turn)
	})
}

func TestPropertyChangeMood_StaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newCareer(rt, testutil.NewScriptedSource(), career.DefaultConfig(100))
		deltas := rapid.SliceOf(rapid.IntRange(-5, 5)).Draw(rt, "deltas")
		for _, d := range deltas {
			c.ChangeMood(d)
			assert.GreaterOrEqual(rt, c.Mood(), mood.Awful)
			assert.LessOrEqual(rt, c.Mood(), mood.Great)
		}
	})
}
