// Package sheetcheck runs the structure checks of the workout sheet from the command line:
// workout detection, movement extraction and validation, on a built-in sample or real data.
package sheetcheck

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/stats"
	"github.com/2beens/fitnessdash/internal/workouts"
)

const DefaultSampleSize = 5

// SampleTable is a three session log covering two workout types and two movement slots.
func SampleTable() *spreadsheet.Table {
	return spreadsheet.NewTable("Sample", [][]string{
		{"Date", "Workout", "movement_1", "weight_1", "rep_1", "set_1", "movement_2", "weight_2", "rep_2", "set_2"},
		{"2024-01-01", "Push Day", "Bench Press", "185", "8", "3", "Shoulder Press", "95", "10", "3"},
		{"2024-01-02", "Pull Day", "Pull-ups", "0", "12", "3", "Rows", "70", "10", "3"},
		{"2024-01-03", "Push Day", "Bench Press", "190", "6", "4", "Incline Press", "155", "8", "3"},
	})
}

// DetectWorkouts prints the unique workout types and passes when there is at least one.
func DetectWorkouts(w io.Writer, t *workouts.Table) bool {
	fmt.Fprintln(w, "=== Workout detection ===")

	names := workouts.UniqueWorkouts(t)
	fmt.Fprintf(w, "Found %d unique workout types:\n", len(names))
	for _, name := range names {
		fmt.Fprintf(w, "  - %s\n", name)
	}

	return len(names) > 0
}

// ExtractMovements prints a sample of the extracted movements and passes when any were found.
func ExtractMovements(w io.Writer, t *workouts.Table, sampleSize int) bool {
	fmt.Fprintln(w, "=== Movement extraction ===")

	movements := workouts.ExtractMovements(t)
	if len(movements) == 0 {
		fmt.Fprintln(w, "FAIL: no movements extracted, check the movement_N / weight_N / rep_N / set_N column names")
		return false
	}

	fmt.Fprintf(w, "Extracted %d movement entries\n", len(movements))
	fmt.Fprintf(w, "Found %d unique movements\n", len(stats.MovementNames(movements)))

	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tworkout\tmovement\tweight\treps\tsets")
	for _, m := range movements[:min(sampleSize, len(movements))] {
		date := "-"
		if m.HasDate() {
			date = m.Date.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", date, m.Workout, m.Name, number(m.Weight), number(m.Reps), number(m.Sets))
	}
	_ = tw.Flush()

	return true
}

// Validate prints the structure issues and passes when there are none.
func Validate(w io.Writer, t *workouts.Table) bool {
	fmt.Fprintln(w, "=== Data validation ===")

	report := workouts.Validate(t)
	if report.Valid() {
		fmt.Fprintln(w, "Data structure is valid")
		return true
	}

	fmt.Fprintln(w, "Data structure issues found:")
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
	return false
}

type Result struct {
	Passed int
	Total  int
}

func (r Result) OK() bool {
	return r.Passed == r.Total
}

// RunAll runs the three checks on a raw table.
func RunAll(w io.Writer, raw *spreadsheet.Table, sampleSize int) Result {
	t := workouts.Normalize(raw)

	checks := []bool{
		DetectWorkouts(w, t),
		ExtractMovements(w, t, sampleSize),
		Validate(w, t),
	}

	res := Result{Total: len(checks)}
	for _, ok := range checks {
		if ok {
			res.Passed++
		}
	}

	fmt.Fprintf(w, "Results: %d/%d passed\n", res.Passed, res.Total)
	return res
}

func number(v *float64) string {
	if v == nil {
		return "-"
	}
	return stats.FormatNumber(*v)
}
