package stats

import (
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"
)

type RecordValue struct {
	Value float64    `json:"value"`
	Date  *time.Time `json:"date"`
}

type PersonalRecord struct {
	Movement   string       `json:"movement"`
	MaxWeight  *RecordValue `json:"max_weight"`
	MaxReps    *RecordValue `json:"max_reps"`
	BestVolume *RecordValue `json:"best_volume"`
}

// PersonalRecords finds the best weight, reps and single-entry volume per movement.
// With no names every movement is included. Ties keep the earliest entry.
func PersonalRecords(movements []workouts.Movement, names []string) []PersonalRecord {
	selected := FilterMovements(movements, names...)

	records := make([]PersonalRecord, 0)
	for _, g := range groupByKey(selected) {
		pr := PersonalRecord{Movement: g.name}
		for _, m := range g.movements {
			if m.Weight != nil {
				pr.MaxWeight = better(pr.MaxWeight, *m.Weight, m)
			}
			if m.Reps != nil {
				pr.MaxReps = better(pr.MaxReps, *m.Reps, m)
			}
			if v := m.Volume(); v > 0 {
				pr.BestVolume = better(pr.BestVolume, v, m)
			}
		}
		records = append(records, pr)
	}

	return records
}

func better(current *RecordValue, v float64, m workouts.Movement) *RecordValue {
	if current != nil && v <= current.Value {
		return current
	}
	rv := &RecordValue{Value: v}
	if m.HasDate() {
		d := m.Date
		rv.Date = &d
	}
	return rv
}
