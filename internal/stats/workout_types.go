package stats

import (
	"sort"
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"
)

type WorkoutTypeCard struct {
	Workout  string     `json:"workout"`
	Sessions int        `json:"sessions"`
	LastDate *time.Time `json:"last_date"`
	// DaysTracked is the span between the first and the last session, nil without dates.
	DaysTracked *int `json:"days_tracked"`
	// DaysSinceLast is counted from now, nil without dates.
	DaysSinceLast *int `json:"days_since_last"`
}

// WorkoutTypeCards builds one card per workout type, ordered by name.
func WorkoutTypeCards(t *workouts.Table, now time.Time) []WorkoutTypeCard {
	cards := make([]WorkoutTypeCard, 0)
	for _, name := range workouts.UniqueWorkouts(t) {
		sessions := t.ForWorkout(name)
		card := WorkoutTypeCard{
			Workout:  name,
			Sessions: sessions.Len(),
		}
		if first, last, ok := sessions.DateRange(); ok {
			tracked := daysBetween(first, last)
			since := daysBetween(last, now)
			if since < 0 {
				since = 0
			}
			l := last
			card.LastDate = &l
			card.DaysTracked = &tracked
			card.DaysSinceLast = &since
		}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Workout < cards[j].Workout
	})

	return cards
}
