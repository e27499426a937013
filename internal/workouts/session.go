package workouts

import (
	"sort"
	"strings"
	"time"
)

// Session is one logged workout occurrence, a single row of the source sheet.
type Session struct {
	// Index is the position of the row in the source sheet, header excluded.
	Index     int                `json:"index"`
	Date      time.Time          `json:"date"`
	Workout   string             `json:"workout"`
	StartTime time.Time          `json:"start_time"`
	Values    map[string]string  `json:"values"`
	Numbers   map[string]float64 `json:"numbers"`
}

func (s Session) HasDate() bool {
	return !s.Date.IsZero()
}

func (s Session) HasStartTime() bool {
	return !s.StartTime.IsZero()
}

// Value returns the cleaned text of a column, empty when missing.
func (s Session) Value(column string) string {
	return s.Values[column]
}

// Number returns the coerced numeric value of a column, false when missing or malformed.
func (s Session) Number(column string) (float64, bool) {
	v, ok := s.Numbers[column]
	return v, ok
}

// Table is the cleaned, normalized form of a fetched sheet.
type Table struct {
	Columns  []string  `json:"columns"`
	Sessions []Session `json:"sessions"`

	// normalization diagnostics
	DroppedEmpty     int `json:"dropped_empty"`
	DroppedNoWorkout int `json:"dropped_no_workout"`
	InvalidDates     int `json:"invalid_dates"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Sessions)
}

func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ForWorkout returns a table holding only the sessions of the given workout type.
func (t *Table) ForWorkout(workout string) *Table {
	return t.filter(func(s Session) bool {
		return s.Workout == workout
	})
}

// Between keeps sessions dated within [from, to], both days inclusive.
// Zero bounds are open. Sessions without a date are dropped when any bound is set.
func (t *Table) Between(from, to time.Time) *Table {
	if from.IsZero() && to.IsZero() {
		return t.filter(func(Session) bool { return true })
	}

	if !to.IsZero() {
		to = to.Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
	}

	return t.filter(func(s Session) bool {
		if !s.HasDate() {
			return false
		}
		if !from.IsZero() && s.Date.Before(from.Truncate(24*time.Hour)) {
			return false
		}
		if !to.IsZero() && s.Date.After(to) {
			return false
		}
		return true
	})
}

func (t *Table) filter(keep func(Session) bool) *Table {
	if t == nil {
		return nil
	}

	filtered := &Table{
		Columns:  t.Columns,
		Sessions: make([]Session, 0, len(t.Sessions)),
	}
	for _, s := range t.Sessions {
		if keep(s) {
			filtered.Sessions = append(filtered.Sessions, s)
		}
	}

	return filtered
}

// DateRange returns the first and last session dates, false when no session has a date.
func (t *Table) DateRange() (time.Time, time.Time, bool) {
	var first, last time.Time
	found := false
	for _, s := range t.sessions() {
		if !s.HasDate() {
			continue
		}
		if !found || s.Date.Before(first) {
			first = s.Date
		}
		if !found || s.Date.After(last) {
			last = s.Date
		}
		found = true
	}
	return first, last, found
}

// SortedByDate returns the sessions most recent first. Undated sessions go last, in row order.
func (t *Table) SortedByDate() []Session {
	sorted := make([]Session, len(t.sessions()))
	copy(sorted, t.sessions())
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.After(b.Date)
	})
	return sorted
}

func (t *Table) sessions() []Session {
	if t == nil {
		return nil
	}
	return t.Sessions
}

// UniqueWorkouts returns the distinct workout labels, sorted, without blanks.
func UniqueWorkouts(t *Table) []string {
	seen := make(map[string]bool)
	unique := make([]string, 0)
	for _, s := range t.sessions() {
		label := strings.TrimSpace(s.Workout)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		unique = append(unique, label)
	}
	sort.Strings(unique)
	return unique
}
