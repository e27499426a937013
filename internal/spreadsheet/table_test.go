package spreadsheet_test

import (
	"testing"

	"github.com/2beens/fitnessdash/internal/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewTable(t *testing.T) {
	table := spreadsheet.NewTable("Workouts", [][]string{
		{" Date ", "Workout", "movement_1", "", " "},
		{"2024-01-01", "Push Day"},
		{"2024-01-02", "Pull Day", "Rows", "extra", "cells", "dropped"},
	})

	assert.Equal(t, "Workouts", table.Worksheet)
	assert.Equal(t, []string{"Date", "Workout", "movement_1"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"2024-01-01", "Push Day", ""}, table.Rows[0])
	assert.Equal(t, []string{"2024-01-02", "Pull Day", "Rows"}, table.Rows[1])
	assert.Equal(t, map[string]string{"Date": "2024-01-02", "Workout": "Pull Day", "movement_1": "Rows"}, table.Record(1))
	assert.Len(t, table.Preview(1), 1)
	assert.Len(t, table.Preview(10), 2)
}

func TestNewTable_Empty(t *testing.T) {
	empty := spreadsheet.NewTable("Sheet1", nil)
	require.NotNil(t, empty)
	assert.True(t, empty.IsEmpty())
	assert.NotNil(t, empty.Columns)
	assert.NotNil(t, empty.Rows)

	headerOnly := spreadsheet.NewTable("Sheet1", [][]string{{"Date", "Workout"}})
	assert.True(t, headerOnly.IsEmpty())
	assert.Len(t, headerOnly.Columns, 2)

	var missing *spreadsheet.Table
	assert.True(t, missing.IsEmpty())
	assert.Equal(t, 0, missing.Len())
	assert.Empty(t, missing.Preview(5))
}
