package dashboard_test

import (
	"testing"
	"time"

	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/spreadsheet"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testFetchedAt = time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)

// five sessions over two workout types, eight movements
func testRawTable() *spreadsheet.Table {
	return spreadsheet.NewTable("Sheet1", [][]string{
		{"Date", "Workout", "Start_Time", "movement_1", "weight_1", "rep_1", "set_1", "movement_2", "weight_2", "rep_2", "set_2", "Notes"},
		{"2024-01-01", "Push Day", "07:30", "Bench Press", "185", "8", "3", "Overhead Press", "95", "10", "3", "felt good"},
		{"2024-01-03", "Pull Day", "18:00", "Deadlift", "315", "5", "1", "", "", "", "", ""},
		{"2024-01-08", "Push Day", "07:45", "Bench Press", "195", "6", "3", "Overhead Press", "100", "8", "3", ""},
		{"2024-02-05", "Pull Day", "", "Deadlift", "335", "3", "1", "Rows", "135", "10", "3", ""},
		{"2024-02-12", "Push Day", "", "bench press", "200", "5", "3", "", "", "", "", ""},
	})
}

func testDataset() *dashboard.Dataset {
	return dashboard.NewDataset("google sheet 'Test Log'", testRawTable(), testFetchedAt, false)
}

func emptyDataset() *dashboard.Dataset {
	return dashboard.NewDataset("google sheet 'Test Log'", spreadsheet.NewTable("Sheet1", nil), testFetchedAt, false)
}
