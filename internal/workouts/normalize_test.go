package workouts_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NilAndEmpty(t *testing.T) {
	assert.Nil(t, workouts.Normalize(nil))

	empty := workouts.Normalize(spreadsheet.NewTable("Sheet1", nil))
	require.NotNil(t, empty)
	assert.True(t, empty.IsEmpty())
	assert.NotNil(t, empty.Sessions)

	headerOnly := workouts.Normalize(spreadsheet.NewTable("Sheet1", [][]string{{"Date", "Workout"}}))
	require.NotNil(t, headerOnly)
	assert.True(t, headerOnly.IsEmpty())
	assert.Equal(t, []string{"Date", "Workout"}, headerOnly.Columns)
}

func TestNormalize(t *testing.T) {
	raw := spreadsheet.NewTable("Sheet1", [][]string{
		{"date", "workout type", "Start Time", "movement_1", "weight_1", "rep_1", "set_1", "notes"},
		{"2024-01-01", "Push Day", "6:30 AM", "Bench Press", "185", "8", "3", "felt good"},
		{"", "", "", "", "", "", "", ""},
		{"2024-01-02", "   ", "", "Squat", "225", "5", "5", ""},
		{"not a date", " Pull  Day ", "", "Rows", "#ERROR!", "10", "3", ""},
		{"2024-01-04", "#N/A", "", "Deadlift", "315", "3", "1", ""},
	})

	table := workouts.Normalize(raw)
	require.NotNil(t, table)

	assert.Equal(t, []string{
		workouts.ColumnDate, workouts.ColumnWorkout, workouts.ColumnStartTime,
		"movement_1", "weight_1", "rep_1", "set_1", "notes",
	}, table.Columns)

	require.Len(t, table.Sessions, 2)
	assert.Equal(t, 1, table.DroppedEmpty)
	assert.Equal(t, 2, table.DroppedNoWorkout)
	assert.Equal(t, 1, table.InvalidDates)

	push := table.Sessions[0]
	assert.Equal(t, 0, push.Index)
	assert.Equal(t, "Push Day", push.Workout)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), push.Date)
	assert.True(t, push.HasStartTime())
	assert.Equal(t, 6, push.StartTime.Hour())
	assert.Equal(t, "felt good", push.Value("notes"))
	w, ok := push.Number("weight_1")
	assert.True(t, ok)
	assert.Equal(t, 185.0, w)

	pull := table.Sessions[1]
	assert.Equal(t, 3, pull.Index)
	assert.Equal(t, "Pull Day", pull.Workout)
	// invalid dates degrade to null, the row stays
	assert.False(t, pull.HasDate())
	// sentinel never reaches numeric coercion
	_, ok = pull.Number("weight_1")
	assert.False(t, ok)
	assert.Equal(t, "", pull.Value("weight_1"))
	reps, ok := pull.Number("rep_1")
	assert.True(t, ok)
	assert.Equal(t, 10.0, reps)
}

func TestNormalize_NoWorkoutColumn(t *testing.T) {
	raw := spreadsheet.NewTable("Sheet1", [][]string{
		{"Date", "movement_1", "weight_1"},
		{"2024-01-01", "Bench Press", "185"},
	})

	table := workouts.Normalize(raw)
	require.NotNil(t, table)
	assert.True(t, table.IsEmpty())
	assert.Equal(t, 1, table.DroppedNoWorkout)
}

func TestNormalize_RowsWithoutWorkoutLabelAreExcluded(t *testing.T) {
	faker := gofakeit.New(42)

	values := [][]string{{"Date", "Workout", "movement_1", "weight_1", "rep_1", "set_1"}}
	withLabel := 0
	for i := 0; i < 200; i++ {
		label := ""
		switch faker.Number(0, 2) {
		case 0:
			label = faker.Word()
			withLabel++
		case 1:
			label = "   "
		}
		values = append(values, []string{
			faker.Date().Format("2006-01-02"),
			label,
			faker.Word(),
			strconv.Itoa(faker.Number(0, 300)),
			strconv.Itoa(faker.Number(0, 20)),
			strconv.Itoa(faker.Number(0, 5)),
		})
	}

	table := workouts.Normalize(spreadsheet.NewTable("Sheet1", values))
	require.NotNil(t, table)
	assert.Equal(t, withLabel, table.Len())
	for _, s := range table.Sessions {
		assert.NotEmpty(t, s.Workout)
	}
}

func TestTable_ForWorkoutAndBetween(t *testing.T) {
	table := workouts.Normalize(spreadsheet.NewTable("Sheet1", [][]string{
		{"Date", "Workout"},
		{"2024-01-01", "Push Day"},
		{"2024-01-05", "Pull Day"},
		{"2024-01-10", "Push Day"},
		{"", "Push Day"},
	}))
	require.NotNil(t, table)

	push := table.ForWorkout("Push Day")
	assert.Equal(t, 3, push.Len())

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	ranged := push.Between(from, to)
	require.Equal(t, 1, ranged.Len())
	assert.Equal(t, 2, ranged.Sessions[0].Index)

	assert.Equal(t, 3, push.Between(time.Time{}, time.Time{}).Len())

	first, last, ok := table.DateRange()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, to, last)

	sorted := push.SortedByDate()
	require.Len(t, sorted, 3)
	assert.Equal(t, 2, sorted[0].Index)
	assert.Equal(t, 0, sorted[1].Index)
	assert.False(t, sorted[2].HasDate())
}

func TestUniqueWorkouts(t *testing.T) {
	table := &workouts.Table{
		Sessions: []workouts.Session{
			{Workout: "Push Day"},
			{Workout: "Legs"},
			{Workout: "  "},
			{Workout: "Push Day"},
			{Workout: ""},
			{Workout: "Cardio"},
		},
	}

	assert.Equal(t, []string{"Cardio", "Legs", "Push Day"}, workouts.UniqueWorkouts(table))
	assert.Empty(t, workouts.UniqueWorkouts(nil))
}
