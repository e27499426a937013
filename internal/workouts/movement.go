package workouts

import (
	"strings"
	"time"
)

// Movement is a single exercise performed within a session, one per filled movement slot.
type Movement struct {
	SessionIndex int       `json:"session_index"`
	Date         time.Time `json:"date"`
	Workout      string    `json:"workout"`
	Name         string    `json:"name"`
	// Key groups spellings that differ only by case.
	Key  string `json:"key"`
	Slot int    `json:"slot"`

	// nil means not logged
	Weight *float64 `json:"weight"`
	Reps   *float64 `json:"reps"`
	Sets   *float64 `json:"sets"`
}

func (m Movement) HasDate() bool {
	return !m.Date.IsZero()
}

// Volume is weight x reps x sets, a missing factor counting as zero.
func (m Movement) Volume() float64 {
	return valueOrZero(m.Weight) * valueOrZero(m.Reps) * valueOrZero(m.Sets)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func MovementKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

// ExtractMovements pivots the wide movement_N / weight_N / rep_N / set_N slots into one record
// per (session, slot). A slot yields a record when its name is neither blank nor a placeholder
// and at least one of weight, reps or sets is positive.
func ExtractMovements(t *Table) []Movement {
	movements := make([]Movement, 0)
	if t == nil {
		return movements
	}

	type slotColumns struct {
		name, weight, reps, sets string
	}
	slots := make(map[int]slotColumns)
	for n := 1; n <= MaxMovementSlots; n++ {
		nameCol, ok := SlotColumn(t.Columns, FieldMovement, n)
		if !ok {
			continue
		}
		cols := slotColumns{name: nameCol}
		cols.weight, _ = SlotColumn(t.Columns, FieldWeight, n)
		cols.reps, _ = SlotColumn(t.Columns, FieldReps, n)
		cols.sets, _ = SlotColumn(t.Columns, FieldSets, n)
		slots[n] = cols
	}

	for _, s := range t.Sessions {
		for n := 1; n <= MaxMovementSlots; n++ {
			cols, ok := slots[n]
			if !ok {
				continue
			}

			name := NormalizeName(s.Value(cols.name))
			if IsPlaceholder(name) {
				continue
			}

			m := Movement{
				SessionIndex: s.Index,
				Date:         s.Date,
				Workout:      s.Workout,
				Name:         name,
				Key:          strings.ToLower(name),
				Slot:         n,
				Weight:       sessionNumber(s, cols.weight),
				Reps:         sessionNumber(s, cols.reps),
				Sets:         sessionNumber(s, cols.sets),
			}
			if !anyPositive(m.Weight, m.Reps, m.Sets) {
				continue
			}

			movements = append(movements, m)
		}
	}

	return movements
}

func sessionNumber(s Session, column string) *float64 {
	if column == "" {
		return nil
	}
	v, ok := s.Number(column)
	if !ok {
		return nil
	}
	return &v
}

func anyPositive(values ...*float64) bool {
	for _, v := range values {
		if v != nil && *v > 0 {
			return true
		}
	}
	return false
}
