package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/stats"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestParseState_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	st := dashboard.ParseState(dashboard.PageSummary, req)

	assert.Equal(t, dashboard.PageSummary, st.Page)
	assert.Equal(t, dashboard.TabOverview, st.Tab)
	assert.Equal(t, stats.Monthly, st.Period)
	assert.Equal(t, stats.MetricWeight, st.Metric)
	assert.Equal(t, 1, st.HistoryPage)
	assert.Equal(t, dashboard.DefaultPageSize, st.PageSize)
	assert.True(t, st.From.IsZero())
	assert.Empty(t, st.Movements)
	assert.False(t, st.GoalSubmitted())
	assert.Equal(t, "/summary", st.URL())
}

func TestParseState_Query(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodGet,
		"/workouts/Push%20Day?tab=history&movements=Bench+Press&movements=+&movements=Squat&period=weekly&page=3&size=50&from=2024-01-01&to=bad&goal_type=Max+Weight&goal_value=225",
		nil,
	)
	req = mux.SetURLVars(req, map[string]string{"name": "Push Day"})
	st := dashboard.ParseState(dashboard.PageWorkout, req)

	assert.Equal(t, "Push Day", st.Workout)
	assert.Equal(t, dashboard.TabHistory, st.Tab)
	assert.Equal(t, []string{"Bench Press", "Squat"}, st.Movements)
	assert.Equal(t, stats.Weekly, st.Period)
	assert.Equal(t, 3, st.HistoryPage)
	assert.Equal(t, 50, st.PageSize)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), st.From)
	assert.True(t, st.To.IsZero())
	assert.True(t, st.GoalSubmitted())
	assert.Equal(t, 225.0, st.GoalValue)
	assert.Equal(t, "/workouts/Push%20Day", st.Path())
}

func TestParseState_EscapedWorkoutName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/workouts/Push%2FPull", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Push%2FPull"})
	st := dashboard.ParseState(dashboard.PageWorkout, req)
	assert.Equal(t, "Push/Pull", st.Workout)
	assert.Equal(t, "/workouts/Push%2FPull", st.URL())

	req = mux.SetURLVars(req, map[string]string{"name": "100%"})
	st = dashboard.ParseState(dashboard.PageWorkout, req)
	assert.Equal(t, "100%", st.Workout, "a malformed escape is kept as sent")
}

func TestParseState_InvalidValuesFallBack(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/progress?tab=nope&page=-2&size=13&metric=speed&period=daily&goal_value=-5", nil)
	st := dashboard.ParseState(dashboard.PageProgress, req)

	assert.Equal(t, dashboard.TabOverview, st.Tab)
	assert.Equal(t, 1, st.HistoryPage)
	assert.Equal(t, dashboard.DefaultPageSize, st.PageSize)
	assert.Equal(t, stats.MetricWeight, st.Metric)
	assert.Equal(t, stats.Monthly, st.Period)
	assert.Zero(t, st.GoalValue)
}

func TestParseState_ProgressWorkoutFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/progress?workout=Pull+Day&movement=Deadlift&metric=volume", nil)
	st := dashboard.ParseState(dashboard.PageProgress, req)

	assert.Equal(t, "Pull Day", st.Workout)
	assert.Equal(t, "Deadlift", st.Movement)
	assert.Equal(t, stats.MetricVolume, st.Metric)
	assert.Equal(t, "/progress?metric=volume&movement=Deadlift&workout=Pull+Day", st.URL())
}

func TestState_Links(t *testing.T) {
	st := dashboard.State{
		Page:        dashboard.PageWorkout,
		Workout:     "Push Day",
		Tab:         dashboard.TabHistory,
		Movement:    "Bench Press",
		HistoryPage: 2,
		PageSize:    10,
		From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "/workouts/Push%20Day?tab=trends", st.TabURL(dashboard.TabTrends))
	assert.Equal(t, "/workouts/Push%20Day", st.TabURL(dashboard.TabOverview))
	assert.Equal(t, "/workouts/Push%20Day?from=2024-01-01&page=3&size=10&tab=history", st.HistoryPageURL(3))
	assert.Equal(t, "/workouts/Pull%20Day", dashboard.WorkoutURL("Pull Day"))
}

func TestTab_Title(t *testing.T) {
	titles := make([]string, 0, len(dashboard.Tabs))
	for _, tab := range dashboard.Tabs {
		titles = append(titles, tab.Title())
	}
	assert.Equal(t, []string{"Overview", "Progress Trends", "Movement Analysis", "Session History", "Goal Tracking"}, titles)
}
