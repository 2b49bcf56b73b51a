package support_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/umacareer/internal/game/stat"
	"github.com/cory-johannsen/umacareer/internal/game/support"
)

func TestPlacementWeights_HomeBoosted(t *testing.T) {
	s, err := support.New(speedRecord(), 50)
	require.NoError(t, err)
	w := s.PlacementWeights()
	assert.Equal(t, 120, w.Facility(stat.Speed))
	for _, k := range []stat.Stat{stat.Stamina, stat.Power, stat.Guts, stat.Wisdom} {
		assert.Equal(t, support.BaseFacilityWeight, w.Facility(k))
	}
	assert.Equal(t, support.AbsentWeight, w.Absent())
	assert.Equal(t, 570, w.Total())
}

func TestPlacementWeights_UniqueScalesHome(t *testing.T) {
	rec := speedRecord()
	rec.Unique = &support.UniqueRecord{
		Level:   1,
		Effects: []support.UniqueEffect{{Type: support.SpecialtyPriority, Value: 100}},
	}
	s, err := support.New(rec, 50)
	require.NoError(t, err)
	assert.Equal(t, 140, s.PlacementWeights().Facility(stat.Speed))
}

func TestPlacementWeights_FriendHasNoHome(t *testing.T) {
	rec := speedRecord()
	rec.Type = ptr(support.FriendType)
	s, err := support.New(rec, 50)
	require.NoError(t, err)
	_, ok := s.Home()
	assert.False(t, ok)
	w := s.PlacementWeights()
	for _, k := range stat.All() {
		assert.Equal(t, support.BaseFacilityWeight, w.Facility(k))
	}
}

func TestWeights_Pick(t *testing.T) {
	s, err := support.New(speedRecord(), 50)
	require.NoError(t, err)
	w := s.PlacementWeights()

	got, ok := w.Pick(0)
	assert.True(t, ok)
	assert.Equal(t, stat.Speed, got)

	got, ok = w.Pick(119)
	assert.True(t, ok)
	assert.Equal(t, stat.Speed, got)

	got, ok = w.Pick(120)
	assert.True(t, ok)
	assert.Equal(t, stat.Stamina, got)

	got, ok = w.Pick(519)
	assert.True(t, ok)
	assert.Equal(t, stat.Wisdom, got)

	_, ok = w.Pick(520)
	assert.False(t, ok, "draws past the facilities land on no-appearance")
	_, ok = w.Pick(569)
	assert.False(t, ok)
}

func TestPropertyWeights_PickCoversEveryDraw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var w support.Weights
		for i := range w {
			w[i] = rapid.IntRange(0, 200).Draw(rt, "weight")
		}
		if w.Total() == 0 {
			return
		}
		counts := make(map[int]int)
		for r := 0; r < w.Total(); r++ {
			f, ok := w.Pick(r)
			if ok {
				counts[int(f)]++
			} else {
				counts[stat.Count]++
			}
		}
		for i, v := range w {
			assert.Equal(rt, v, counts[i], "outcome %d must receive exactly its weight", i)
		}
	})
}
