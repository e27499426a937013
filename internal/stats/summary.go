package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"
)

const dateLayout = "2006-01-02"

type DataSummary struct {
	TotalSessions   int        `json:"total_sessions"`
	UniqueWorkouts  int        `json:"unique_workouts"`
	UniqueMovements int        `json:"unique_movements"`
	TotalMovements  int        `json:"total_movements"`
	TotalVolume     float64    `json:"total_volume"`
	FirstDate       *time.Time `json:"first_date"`
	LastDate        *time.Time `json:"last_date"`
	DateRange       string     `json:"date_range"`
	Columns         []string   `json:"columns"`

	DroppedEmpty     int `json:"dropped_empty"`
	DroppedNoWorkout int `json:"dropped_no_workout"`
	InvalidDates     int `json:"invalid_dates"`
}

// Summarize computes the headline numbers of a cleaned table and its movements.
func Summarize(t *workouts.Table, movements []workouts.Movement) DataSummary {
	summary := DataSummary{
		Columns:   []string{},
		DateRange: "No data",
	}
	if t == nil {
		return summary
	}

	summary.Columns = t.Columns
	summary.TotalSessions = t.Len()
	summary.UniqueWorkouts = len(workouts.UniqueWorkouts(t))
	summary.UniqueMovements = len(uniqueKeys(movements))
	summary.TotalMovements = len(movements)
	summary.TotalVolume = TotalVolume(movements)
	summary.DroppedEmpty = t.DroppedEmpty
	summary.DroppedNoWorkout = t.DroppedNoWorkout
	summary.InvalidDates = t.InvalidDates

	if t.IsEmpty() {
		return summary
	}

	first, last, ok := t.DateRange()
	if !ok {
		summary.DateRange = "No date information"
		return summary
	}

	summary.FirstDate = &first
	summary.LastDate = &last
	summary.DateRange = fmt.Sprintf("%s to %s", first.Format(dateLayout), last.Format(dateLayout))

	return summary
}

// TotalVolume sums weight x reps x sets, missing values counting as zero.
func TotalVolume(movements []workouts.Movement) float64 {
	total := 0.0
	for _, m := range movements {
		total += m.Volume()
	}
	return total
}

type StatRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// SummaryTable is the metric/value table shown on the summary page.
func SummaryTable(t *workouts.Table, movements []workouts.Movement) []StatRow {
	if t.IsEmpty() {
		return []StatRow{{Metric: "No data", Value: "N/A"}}
	}

	rows := []StatRow{
		{Metric: "Total Records", Value: fmt.Sprint(t.Len())},
		{Metric: "Unique Workouts", Value: fmt.Sprint(len(workouts.UniqueWorkouts(t)))},
		{Metric: "Unique Movements", Value: fmt.Sprint(len(uniqueKeys(movements)))},
	}

	if first, last, ok := t.DateRange(); ok {
		rows = append(rows, StatRow{Metric: "Date Range (Days)", Value: fmt.Sprint(daysBetween(first, last))})
	} else {
		rows = append(rows, StatRow{Metric: "Date Range (Days)", Value: "N/A"})
	}

	maxOf := func(pick func(workouts.Movement) *float64) (float64, bool) {
		found := false
		best := 0.0
		for _, m := range movements {
			v := pick(m)
			if v == nil {
				continue
			}
			if !found || *v > best {
				best = *v
			}
			found = true
		}
		return best, found
	}

	if v, ok := maxOf(func(m workouts.Movement) *float64 { return m.Weight }); ok {
		rows = append(rows, StatRow{Metric: "Max Weight", Value: FormatNumber(v)})
	}
	if v, ok := maxOf(func(m workouts.Movement) *float64 { return m.Reps }); ok {
		rows = append(rows, StatRow{Metric: "Max Reps", Value: FormatNumber(v)})
	}
	if v, ok := maxOf(func(m workouts.Movement) *float64 { return m.Sets }); ok {
		rows = append(rows, StatRow{Metric: "Max Sets", Value: FormatNumber(v)})
	}
	rows = append(rows, StatRow{Metric: "Total Volume", Value: FormatNumber(TotalVolume(movements))})

	return rows
}

// maxExactInt bounds the integer branch of FormatNumber; int64 conversion is undefined past it.
const maxExactInt = 1e15

// FormatNumber prints whole numbers without decimals and everything else with one.
func FormatNumber(v float64) string {
	if math.Abs(v) < maxExactInt && v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func uniqueKeys(movements []workouts.Movement) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, m := range movements {
		if seen[m.Key] {
			continue
		}
		seen[m.Key] = true
		keys = append(keys, m.Key)
	}
	return keys
}
