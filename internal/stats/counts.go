package stats

import (
	"sort"
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"
)

const (
	DefaultFrequencyLimit    = 10
	DefaultDistributionLimit = 8
)

type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WorkoutFrequency counts sessions per workout type, highest first.
func WorkoutFrequency(t *workouts.Table, limit int) []CountItem {
	counts := make(map[string]int)
	if t != nil {
		for _, s := range t.Sessions {
			counts[s.Workout]++
		}
	}
	return topCounts(counts, limit)
}

// MovementDistribution counts entries per movement, highest first.
func MovementDistribution(movements []workouts.Movement, limit int) []CountItem {
	counts := make(map[string]int)
	for _, g := range groupByKey(movements) {
		counts[g.name] = len(g.movements)
	}
	return topCounts(counts, limit)
}

func topCounts(counts map[string]int, limit int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for label, count := range counts {
		items = append(items, CountItem{Label: label, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ActivityTimeline counts sessions per calendar day, oldest first.
func ActivityTimeline(t *workouts.Table) []DailyCount {
	perDay := make(map[time.Time]int)
	if t != nil {
		for _, s := range t.Sessions {
			if !s.HasDate() {
				continue
			}
			day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
			perDay[day]++
		}
	}

	timeline := make([]DailyCount, 0, len(perDay))
	for day, count := range perDay {
		timeline = append(timeline, DailyCount{Date: day, Count: count})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date.Before(timeline[j].Date)
	})
	return timeline
}
