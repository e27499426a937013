package workouts

import (
	"github.com/2beens/fitnessdash/internal/spreadsheet"
)

// Normalize turns a fetched sheet into a cleaned session table:
//   - known column name variants are renamed to their canonical names
//   - formula error tokens become null
//   - dates, start times and numeric columns are coerced, invalid values become null
//   - fully empty rows and rows without a workout label are dropped
//
// A nil sheet (failed fetch) gives a nil table, an empty sheet gives an empty table.
func Normalize(raw *spreadsheet.Table) *Table {
	if raw == nil {
		return nil
	}

	columns := CanonicalColumns(raw.Columns)
	numeric := numericColumns(columns)

	table := &Table{
		Columns:  columns,
		Sessions: make([]Session, 0, raw.Len()),
	}

	for i, row := range raw.Rows {
		values := make(map[string]string, len(columns))
		empty := true
		for c, col := range columns {
			cell := CleanCell(row[c])
			if cell == "" {
				continue
			}
			empty = false
			// first non-empty wins for duplicated headers
			if _, ok := values[col]; !ok {
				values[col] = cell
			}
		}

		if empty {
			table.DroppedEmpty++
			continue
		}

		workout := NormalizeName(values[ColumnWorkout])
		if workout == "" {
			table.DroppedNoWorkout++
			continue
		}

		session := Session{
			Index:   i,
			Workout: workout,
			Values:  values,
			Numbers: make(map[string]float64),
		}

		if rawDate, ok := values[ColumnDate]; ok {
			if d, ok := ParseDate(rawDate); ok {
				session.Date = d
			} else {
				table.InvalidDates++
			}
		}

		if rawStart, ok := values[ColumnStartTime]; ok {
			if st, ok := ParseClock(rawStart); ok {
				session.StartTime = st
			}
		}

		for col := range numeric {
			if v, ok := ParseNumber(values[col]); ok {
				session.Numbers[col] = v
			}
		}

		table.Sessions = append(table.Sessions, session)
	}

	return table
}

// numericColumns lists the declared numeric columns present in a header:
// the slot weight/reps/sets groups and the flat Weight/Reps/Sets columns.
func numericColumns(columns []string) map[string]bool {
	numeric := make(map[string]bool)
	for _, flat := range []string{ColumnWeight, ColumnReps, ColumnSets} {
		for _, col := range columns {
			if col == flat {
				numeric[col] = true
			}
		}
	}

	for n := 1; n <= MaxMovementSlots; n++ {
		for _, field := range []SlotField{FieldWeight, FieldReps, FieldSets} {
			for _, pattern := range slotAliases[field] {
				if col, ok := slotColumnExact(columns, pattern, n); ok {
					numeric[col] = true
				}
			}
		}
	}

	return numeric
}
