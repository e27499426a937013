package workouts

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Report lists human-readable structure issues of a cleaned table.
// It is diagnostic only, nothing downstream refuses to run on an invalid table.
type Report struct {
	Issues []string `json:"issues"`
}

func (r Report) Valid() bool {
	return len(r.Issues) == 0
}

// Err combines all issues into a single error, nil when the table is valid.
func (r Report) Err() error {
	var err error
	for _, issue := range r.Issues {
		err = multierr.Append(err, errors.New(issue))
	}
	return err
}

func (r *Report) add(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

// Validate checks that a cleaned table has the columns the dashboard relies on.
func Validate(t *Table) Report {
	report := Report{Issues: []string{}}
	if t == nil {
		report.add("No data loaded")
		return report
	}

	if !t.HasColumn(ColumnWorkout) {
		report.add("Missing workout column (expected a column named like 'Workout')")
	}
	if !t.HasColumn(ColumnDate) {
		report.add("Missing date column (expected a column named like 'Date')")
	}

	slotsFound := 0
	for n := 1; n <= MaxMovementSlots; n++ {
		nameCol, ok := SlotColumn(t.Columns, FieldMovement, n)
		if !ok {
			continue
		}
		slotsFound++

		_, hasWeight := SlotColumn(t.Columns, FieldWeight, n)
		_, hasReps := SlotColumn(t.Columns, FieldReps, n)
		_, hasSets := SlotColumn(t.Columns, FieldSets, n)
		if !hasWeight && !hasReps && !hasSets {
			report.add("Column '%s' has no matching weight_%d, rep_%d or set_%d column", nameCol, n, n, n)
		}
	}
	if slotsFound == 0 {
		report.add("No movement columns found (expected movement_1, movement_2, ...)")
	}

	if t.IsEmpty() {
		report.add("No data rows found")
		return report
	}

	if _, _, ok := t.DateRange(); t.HasColumn(ColumnDate) && !ok {
		report.add("None of the %d rows has a valid date", t.Len())
	}

	return report
}
