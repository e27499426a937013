package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"

	"gonum.org/v1/gonum/stat"
)

type Period string

const (
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
)

var Periods = []Period{Weekly, Monthly, Quarterly}

// ParsePeriod defaults to monthly for unknown input.
func ParsePeriod(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Weekly:
		return Weekly
	case Quarterly:
		return Quarterly
	default:
		return Monthly
	}
}

func (p Period) Title() string {
	switch p {
	case Weekly:
		return "Weekly"
	case Quarterly:
		return "Quarterly"
	default:
		return "Monthly"
	}
}

// Start returns the first day of the period holding t. Weeks start on Monday.
func (p Period) Start(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch p {
	case Weekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Quarterly:
		firstMonth := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

func (p Period) Label(t time.Time) string {
	switch p {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Quarterly:
		return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return t.Format("2006-01")
	}
}

type PeriodBucket struct {
	Label     string    `json:"label"`
	Start     time.Time `json:"start"`
	Sessions  int       `json:"sessions"`
	Entries   int       `json:"entries"`
	Volume    float64   `json:"volume"`
	MaxWeight *float64  `json:"max_weight"`
	AvgWeight *float64  `json:"avg_weight"`
	MaxReps   *float64  `json:"max_reps"`
	TotalReps float64   `json:"total_reps"`
	TotalSets float64   `json:"total_sets"`
}

// GroupByPeriod buckets movements by week, month or quarter. Undated movements are skipped.
func GroupByPeriod(movements []workouts.Movement, period Period) []PeriodBucket {
	type accumulator struct {
		bucket   PeriodBucket
		sessions map[int]bool
		weights  []float64
	}

	byStart := make(map[time.Time]*accumulator)
	for _, m := range movements {
		if !m.HasDate() {
			continue
		}
		start := period.Start(m.Date)
		acc, ok := byStart[start]
		if !ok {
			acc = &accumulator{
				bucket:   PeriodBucket{Label: period.Label(m.Date), Start: start},
				sessions: make(map[int]bool),
			}
			byStart[start] = acc
		}

		acc.sessions[m.SessionIndex] = true
		acc.bucket.Entries++
		acc.bucket.Volume += m.Volume()
		if m.Weight != nil {
			acc.weights = append(acc.weights, *m.Weight)
			acc.bucket.MaxWeight = maxPtr(acc.bucket.MaxWeight, *m.Weight)
		}
		if m.Reps != nil {
			acc.bucket.TotalReps += *m.Reps
			acc.bucket.MaxReps = maxPtr(acc.bucket.MaxReps, *m.Reps)
		}
		if m.Sets != nil {
			acc.bucket.TotalSets += *m.Sets
		}
	}

	buckets := make([]PeriodBucket, 0, len(byStart))
	for _, acc := range byStart {
		acc.bucket.Sessions = len(acc.sessions)
		if len(acc.weights) > 0 {
			avg := stat.Mean(acc.weights, nil)
			acc.bucket.AvgWeight = &avg
		}
		buckets = append(buckets, acc.bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return buckets
}

type PeriodCount struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// SessionsPerPeriod counts dated sessions per period.
func SessionsPerPeriod(t *workouts.Table, period Period) []PeriodCount {
	byStart := make(map[time.Time]*PeriodCount)
	if t != nil {
		for _, s := range t.Sessions {
			if !s.HasDate() {
				continue
			}
			start := period.Start(s.Date)
			pc, ok := byStart[start]
			if !ok {
				pc = &PeriodCount{Label: period.Label(s.Date), Start: start}
				byStart[start] = pc
			}
			pc.Count++
		}
	}

	counts := make([]PeriodCount, 0, len(byStart))
	for _, pc := range byStart {
		counts = append(counts, *pc)
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Start.Before(counts[j].Start)
	})

	return counts
}

type ProgressSeries struct {
	Movement string         `json:"movement"`
	Buckets  []PeriodBucket `json:"buckets"`
}

// MovementProgress groups each selected movement by period, in the order the names are given.
func MovementProgress(movements []workouts.Movement, names []string, period Period) []ProgressSeries {
	series := make([]ProgressSeries, 0, len(names))
	for _, name := range names {
		selected := FilterMovements(movements, name)
		if len(selected) == 0 {
			continue
		}
		series = append(series, ProgressSeries{
			Movement: selected[0].Name,
			Buckets:  GroupByPeriod(selected, period),
		})
	}
	return series
}

// PeriodLabels merges the bucket labels of several series into one ordered axis.
func PeriodLabels(series []ProgressSeries) []string {
	starts := make(map[time.Time]string)
	for _, s := range series {
		for _, b := range s.Buckets {
			starts[b.Start] = b.Label
		}
	}

	ordered := make([]time.Time, 0, len(starts))
	for start := range starts {
		ordered = append(ordered, start)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Before(ordered[j])
	})

	labels := make([]string, 0, len(ordered))
	for _, start := range ordered {
		labels = append(labels, starts[start])
	}
	return labels
}
