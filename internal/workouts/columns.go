package workouts

import (
	"fmt"
	"regexp"
	"strings"
)

// canonical column names of a cleaned table
const (
	ColumnDate      = "Date"
	ColumnWorkout   = "Workout"
	ColumnStartTime = "Start_Time"
	ColumnWeight    = "Weight"
	ColumnReps      = "Reps"
	ColumnSets      = "Sets"
)

// MaxMovementSlots is the number of movement_N column groups looked at per row.
const MaxMovementSlots = 10

type SlotField string

const (
	FieldMovement SlotField = "movement"
	FieldWeight   SlotField = "weight"
	FieldReps     SlotField = "reps"
	FieldSets     SlotField = "sets"
)

type aliasRule struct {
	canonical string
	exact     []string
	contains  []string
}

// columnAliases is consulted in order: exact aliases of every rule first, then substring rules.
var columnAliases = []aliasRule{
	{
		canonical: ColumnDate,
		exact:     []string{"date", "workout date", "session date", "day"},
		contains:  []string{"date"},
	},
	{
		canonical: ColumnWorkout,
		exact:     []string{"workout", "workout type", "workout name", "type", "routine"},
		contains:  []string{"workout"},
	},
	{
		canonical: ColumnStartTime,
		exact:     []string{"start time", "start", "time", "starttime"},
		contains:  []string{"start"},
	},
	{
		canonical: ColumnWeight,
		exact:     []string{"weight", "weights", "wt"},
	},
	{
		canonical: ColumnReps,
		exact:     []string{"reps", "rep", "repetitions"},
	},
	{
		canonical: ColumnSets,
		exact:     []string{"sets", "set"},
	},
}

var slotAliases = map[SlotField][]string{
	FieldMovement: {"movement_%d", "movements_%d", "exercise_%d"},
	FieldWeight:   {"weight_%d", "weights_%d", "wt_%d"},
	FieldReps:     {"rep_%d", "reps_%d", "repetitions_%d"},
	FieldSets:     {"set_%d", "sets_%d"},
}

var (
	slotColumnRegex = regexp.MustCompile(`^[a-z]+_?\d+$`)
	separatorsRegex = regexp.MustCompile(`[\s_\-]+`)
)

func normalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSpace(separatorsRegex.ReplaceAllString(name, " "))
}

func isSlotColumn(name string) bool {
	return slotColumnRegex.MatchString(strings.ToLower(strings.TrimSpace(name)))
}

// CanonicalColumn maps a raw header to its canonical name using the alias table.
// Slot columns (movement_3, wt_1, ...) are never renamed.
func CanonicalColumn(name string) (string, bool) {
	if isSlotColumn(name) {
		return "", false
	}

	normalized := normalizeColumnName(name)
	if normalized == "" {
		return "", false
	}

	for _, rule := range columnAliases {
		for _, alias := range rule.exact {
			if normalized == alias {
				return rule.canonical, true
			}
		}
	}

	for _, rule := range columnAliases {
		for _, part := range rule.contains {
			if strings.Contains(normalized, part) {
				return rule.canonical, true
			}
		}
	}

	return "", false
}

// CanonicalColumns renames a header row. The first column claiming a canonical
// name wins, later candidates keep their original names.
func CanonicalColumns(columns []string) []string {
	renamed := make([]string, len(columns))
	claimed := make(map[string]bool)

	// exact matches claim first, so "Workout" beats "Workout Notes" regardless of order
	for pass := 0; pass < 2; pass++ {
		for i, col := range columns {
			if renamed[i] != "" {
				continue
			}
			canonical, ok := CanonicalColumn(col)
			if !ok || claimed[canonical] {
				continue
			}
			if pass == 0 && !isExactAlias(col) {
				continue
			}
			renamed[i] = canonical
			claimed[canonical] = true
		}
	}

	for i, col := range columns {
		if renamed[i] == "" {
			renamed[i] = strings.TrimSpace(col)
		}
	}

	return renamed
}

func isExactAlias(name string) bool {
	normalized := normalizeColumnName(name)
	for _, rule := range columnAliases {
		for _, alias := range rule.exact {
			if normalized == alias {
				return true
			}
		}
	}
	return false
}

// SlotColumn finds the column holding the given field of movement slot n.
// Matching is case-insensitive and exact against the slot alias list.
func SlotColumn(columns []string, field SlotField, n int) (string, bool) {
	for _, pattern := range slotAliases[field] {
		if col, ok := slotColumnExact(columns, pattern, n); ok {
			return col, true
		}
	}
	return "", false
}

func slotColumnExact(columns []string, pattern string, n int) (string, bool) {
	want := fmt.Sprintf(pattern, n)
	for _, col := range columns {
		if strings.EqualFold(strings.TrimSpace(col), want) {
			return col, true
		}
	}
	return "", false
}
