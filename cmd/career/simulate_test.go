package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/umacareer/internal/game/career"
	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

func TestChoose(t *testing.T) {
	actions := career.Actions()

	a, err := choose("1", actions)
	require.NoError(t, err)
	assert.Equal(t, actions[0], a)

	a, err = choose("train power", actions)
	require.NoError(t, err)
	assert.Equal(t, career.TrainPower, a)

	_, err = choose("0", actions)
	assert.ErrorIs(t, err, errQuit)
	_, err = choose("QUIT", actions)
	assert.ErrorIs(t, err, errQuit)

	_, err = choose("99", actions)
	assert.Error(t, err)
	_, err = choose("nap", actions)
	assert.ErrorIs(t, err, career.ErrUnknownAction)
}

func TestFormatStats(t *testing.T) {
	got := formatStats(stat.Stats{Speed: 1, Stamina: 2, Power: 3, Guts: 4, Wisdom: 5})
	assert.Equal(t, "speed 1, stamina 2, power 3, guts 4, wisdom 5", got)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	reg, err := condition.LoadDirectory("../../content/conditions")
	require.NoError(t, err)
	printSummary(&buf, career.Summary{
		TraineeName: "Special Week",
		TraineeID:   100101,
		Turns:       72,
		Conditions:  []condition.ID{condition.NightOwl},
	}, reg)
	assert.Contains(t, buf.String(), "Special Week (100101)")
	assert.Contains(t, buf.String(), "Turns:      72")
	assert.Contains(t, buf.String(), "Conditions: Night Owl")
}

func TestFormatConditions_Empty(t *testing.T) {
	assert.Equal(t, "none", formatConditions(nil, condition.NewRegistry()))
}
