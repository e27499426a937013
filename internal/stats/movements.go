package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"

	"gonum.org/v1/gonum/stat"
)

type MovementStat struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	// Sessions counts distinct sessions, Entries counts slots (a movement can fill two slots of one session).
	Sessions    int        `json:"sessions"`
	Entries     int        `json:"entries"`
	MeanWeight  *float64   `json:"mean_weight"`
	MaxWeight   *float64   `json:"max_weight"`
	MaxReps     *float64   `json:"max_reps"`
	TotalReps   float64    `json:"total_reps"`
	TotalSets   float64    `json:"total_sets"`
	AvgSets     *float64   `json:"avg_sets"`
	TotalVolume float64    `json:"total_volume"`
	LastDate    *time.Time `json:"last_date"`
}

// MovementStats aggregates per movement. Missing values count as zero in sums
// and are left out of means and maxima. Sorted by name.
func MovementStats(movements []workouts.Movement) []MovementStat {
	groups := groupByKey(movements)

	result := make([]MovementStat, 0, len(groups))
	for _, g := range groups {
		ms := MovementStat{
			Name:    g.name,
			Key:     g.key,
			Entries: len(g.movements),
		}

		sessions := make(map[int]bool)
		var weights, sets []float64
		for _, m := range g.movements {
			sessions[m.SessionIndex] = true
			if m.Weight != nil {
				weights = append(weights, *m.Weight)
			}
			if m.Reps != nil {
				ms.TotalReps += *m.Reps
				ms.MaxReps = maxPtr(ms.MaxReps, *m.Reps)
			}
			if m.Sets != nil {
				sets = append(sets, *m.Sets)
				ms.TotalSets += *m.Sets
			}
			ms.TotalVolume += m.Volume()
			if m.HasDate() && (ms.LastDate == nil || m.Date.After(*ms.LastDate)) {
				d := m.Date
				ms.LastDate = &d
			}
		}
		ms.Sessions = len(sessions)

		if len(weights) > 0 {
			mean := stat.Mean(weights, nil)
			ms.MeanWeight = &mean
			for _, w := range weights {
				ms.MaxWeight = maxPtr(ms.MaxWeight, w)
			}
		}
		if len(sets) > 0 {
			avg := stat.Mean(sets, nil)
			ms.AvgSets = &avg
		}

		result = append(result, ms)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})

	return result
}

// MovementNames returns the display names of all movements, sorted.
func MovementNames(movements []workouts.Movement) []string {
	groups := groupByKey(movements)
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// FilterMovements keeps the movements matching any of the given names, case-insensitively.
// An empty name list keeps everything.
func FilterMovements(movements []workouts.Movement, names ...string) []workouts.Movement {
	if len(names) == 0 {
		return movements
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[workouts.MovementKey(n)] = true
	}

	filtered := make([]workouts.Movement, 0)
	for _, m := range movements {
		if wanted[m.Key] {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// ForWorkout keeps the movements logged under the given workout type.
func ForWorkout(movements []workouts.Movement, workout string) []workouts.Movement {
	if workout == "" {
		return movements
	}
	filtered := make([]workouts.Movement, 0)
	for _, m := range movements {
		if m.Workout == workout {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// MovementDetails returns the entries of one movement, most recent first.
func MovementDetails(movements []workouts.Movement, name string, limit int) []workouts.Movement {
	details := FilterMovements(movements, name)
	sorted := make([]workouts.Movement, len(details))
	copy(sorted, details)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.After(b.Date)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

type SessionTotals struct {
	Movements int     `json:"movements"`
	Volume    float64 `json:"volume"`
}

// BySession sums the movements of every session, keyed by session index.
func BySession(movements []workouts.Movement) map[int]SessionTotals {
	totals := make(map[int]SessionTotals)
	for _, m := range movements {
		st := totals[m.SessionIndex]
		st.Movements++
		st.Volume += m.Volume()
		totals[m.SessionIndex] = st
	}
	return totals
}

type movementGroup struct {
	key       string
	name      string
	movements []workouts.Movement
}

// groupByKey groups by case-insensitive key, in first-seen order. The first spelling names the group.
func groupByKey(movements []workouts.Movement) []*movementGroup {
	index := make(map[string]*movementGroup)
	groups := make([]*movementGroup, 0)
	for _, m := range movements {
		g, ok := index[m.Key]
		if !ok {
			g = &movementGroup{key: m.Key, name: m.Name}
			index[m.Key] = g
			groups = append(groups, g)
		}
		g.movements = append(g.movements, m)
	}
	return groups
}

func maxPtr(current *float64, v float64) *float64 {
	if current == nil || v > *current {
		return &v
	}
	return current
}
