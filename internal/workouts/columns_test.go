package workouts_test

import (
	"testing"

	"github.com/2beens/fitnessdash/internal/workouts"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCanonicalColumn(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{raw: "date", expected: workouts.ColumnDate, ok: true},
		{raw: "  DATE ", expected: workouts.ColumnDate, ok: true},
		{raw: "Workout Date", expected: workouts.ColumnDate, ok: true},
		{raw: "workout", expected: workouts.ColumnWorkout, ok: true},
		{raw: "Workout_Type", expected: workouts.ColumnWorkout, ok: true},
		{raw: "workout-name", expected: workouts.ColumnWorkout, ok: true},
		{raw: "Start Time", expected: workouts.ColumnStartTime, ok: true},
		{raw: "start_time", expected: workouts.ColumnStartTime, ok: true},
		{raw: "Started At", expected: workouts.ColumnStartTime, ok: true},
		{raw: "weight", expected: workouts.ColumnWeight, ok: true},
		{raw: "Repetitions", expected: workouts.ColumnReps, ok: true},
		{raw: "movement_1", ok: false},
		{raw: "Weight_3", ok: false},
		{raw: "wt_10", ok: false},
		{raw: "notes", ok: false},
		{raw: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			canonical, ok := workouts.CanonicalColumn(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, canonical)
		})
	}
}

func TestCanonicalColumns_FirstClaimWins(t *testing.T) {
	renamed := workouts.CanonicalColumns([]string{
		"Workout Notes", "workout", "date", "Session Date", " notes ", "movement_1",
	})
	assert.Equal(t, []string{
		"Workout Notes", workouts.ColumnWorkout, workouts.ColumnDate, "Session Date", "notes", "movement_1",
	}, renamed)
}

func TestCanonicalColumns_SubstringFallback(t *testing.T) {
	renamed := workouts.CanonicalColumns([]string{"Training Date", "My Workout", "movement_1"})
	assert.Equal(t, []string{workouts.ColumnDate, workouts.ColumnWorkout, "movement_1"}, renamed)
}

func TestSlotColumn(t *testing.T) {
	columns := []string{"Date", "Workout", "Movement_1", "WT_1", "Repetitions_1", "sets_1", "movement_2", "weight_2"}

	col, ok := workouts.SlotColumn(columns, workouts.FieldMovement, 1)
	assert.True(t, ok)
	assert.Equal(t, "Movement_1", col)

	col, ok = workouts.SlotColumn(columns, workouts.FieldWeight, 1)
	assert.True(t, ok)
	assert.Equal(t, "WT_1", col)

	col, ok = workouts.SlotColumn(columns, workouts.FieldReps, 1)
	assert.True(t, ok)
	assert.Equal(t, "Repetitions_1", col)

	col, ok = workouts.SlotColumn(columns, workouts.FieldSets, 1)
	assert.True(t, ok)
	assert.Equal(t, "sets_1", col)

	_, ok = workouts.SlotColumn(columns, workouts.FieldReps, 2)
	assert.False(t, ok)

	// exact match only, movement_1 must not match movement_10
	_, ok = workouts.SlotColumn([]string{"movement_10"}, workouts.FieldMovement, 1)
	assert.False(t, ok)
}
