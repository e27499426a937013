package dashboard

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/stats"

	"github.com/gorilla/mux"
)

type Page string

const (
	PageHome     Page = "home"
	PageSummary  Page = "summary"
	PageWorkouts Page = "workouts"
	PageWorkout  Page = "workout"
	PageProgress Page = "progress"
)

type Tab string

const (
	TabOverview  Tab = "overview"
	TabTrends    Tab = "trends"
	TabMovements Tab = "movements"
	TabHistory   Tab = "history"
	TabGoals     Tab = "goals"
)

var Tabs = []Tab{TabOverview, TabTrends, TabMovements, TabHistory, TabGoals}

func (t Tab) Title() string {
	switch t {
	case TabTrends:
		return "Progress Trends"
	case TabMovements:
		return "Movement Analysis"
	case TabHistory:
		return "Session History"
	case TabGoals:
		return "Goal Tracking"
	default:
		return "Overview"
	}
}

func parseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabOverview
}

const (
	DefaultPageSize         = 20
	DefaultTrendMovements   = 3
	DefaultDetailsLimit     = 20
	DefaultRecentSessions   = 5
	DefaultPreviewRows      = 10
	queryDateLayout         = "2006-01-02"
	queryParamMovements     = "movements"
	queryParamMovement      = "movement"
	queryParamPeriod        = "period"
	queryParamMetric        = "metric"
	queryParamTab           = "tab"
	queryParamHistoryPage   = "page"
	queryParamPageSize      = "size"
	queryParamFrom          = "from"
	queryParamTo            = "to"
	queryParamNotice        = "notice"
	queryParamGoalType      = "goal_type"
	queryParamGoalValue     = "goal_value"
	queryParamGoalDate      = "goal_date"
	queryParamWorkoutFilter = "workout"
)

var PageSizes = []int{10, 20, 50, 100}

var GoalTypes = []string{"Max Weight", "Total Volume", "Frequency"}

// State is everything a page render depends on. It lives in the URL, so every page is
// linkable and nothing is kept between requests.
type State struct {
	Page    Page
	Workout string
	Tab     Tab

	// Movements are the multi-selected movements of the trends tab,
	// Movement the single one of the analysis, goals and progress views.
	Movements []string
	Movement  string
	Period    stats.Period
	Metric    stats.Metric

	HistoryPage int
	PageSize    int
	From        time.Time
	To          time.Time

	GoalType  string
	GoalValue float64
	GoalDate  time.Time

	Notice string
}

// ParseState reads the state of the given page from the request. Invalid values fall back to defaults.
func ParseState(page Page, r *http.Request) State {
	q := r.URL.Query()

	st := State{
		Page:        page,
		Workout:     pathVar(r, "name"),
		Tab:         parseTab(q.Get(queryParamTab)),
		Movement:    strings.TrimSpace(q.Get(queryParamMovement)),
		Period:      stats.ParsePeriod(q.Get(queryParamPeriod)),
		Metric:      stats.ParseMetric(q.Get(queryParamMetric)),
		HistoryPage: 1,
		PageSize:    DefaultPageSize,
		From:        parseQueryDate(q.Get(queryParamFrom)),
		To:          parseQueryDate(q.Get(queryParamTo)),
		GoalType:    q.Get(queryParamGoalType),
		GoalDate:    parseQueryDate(q.Get(queryParamGoalDate)),
		Notice:      q.Get(queryParamNotice),
	}
	if st.Workout == "" && page == PageProgress {
		st.Workout = q.Get(queryParamWorkoutFilter)
	}

	for _, m := range q[queryParamMovements] {
		if m = strings.TrimSpace(m); m != "" {
			st.Movements = append(st.Movements, m)
		}
	}

	if p, err := strconv.Atoi(q.Get(queryParamHistoryPage)); err == nil && p > 0 {
		st.HistoryPage = p
	}
	if size, err := strconv.Atoi(q.Get(queryParamPageSize)); err == nil && validPageSize(size) {
		st.PageSize = size
	}
	if v, err := strconv.ParseFloat(q.Get(queryParamGoalValue), 64); err == nil && v >= 0 {
		st.GoalValue = v
	}

	return st
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

func parseQueryDate(s string) time.Time {
	d, err := time.Parse(queryDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return d
}

// GoalSubmitted reports whether the goal form was sent.
func (s State) GoalSubmitted() bool {
	return s.GoalType != ""
}

// Path is the route of the page, without query.
func (s State) Path() string {
	switch s.Page {
	case PageSummary:
		return "/summary"
	case PageWorkouts:
		return "/workouts"
	case PageWorkout:
		return "/workouts/" + url.PathEscape(s.Workout)
	case PageProgress:
		return "/progress"
	default:
		return "/"
	}
}

// Query encodes the non-default parts of the state.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Page == PageWorkout && s.Tab != "" && s.Tab != TabOverview {
		q.Set(queryParamTab, string(s.Tab))
	}
	if s.Page == PageProgress && s.Workout != "" {
		q.Set(queryParamWorkoutFilter, s.Workout)
	}
	for _, m := range s.Movements {
		q.Add(queryParamMovements, m)
	}
	if s.Movement != "" {
		q.Set(queryParamMovement, s.Movement)
	}
	if s.Period != "" && s.Period != stats.Monthly {
		q.Set(queryParamPeriod, string(s.Period))
	}
	if s.Metric != "" && s.Metric != stats.MetricWeight {
		q.Set(queryParamMetric, string(s.Metric))
	}
	if s.HistoryPage > 1 {
		q.Set(queryParamHistoryPage, strconv.Itoa(s.HistoryPage))
	}
	if s.PageSize != 0 && s.PageSize != DefaultPageSize {
		q.Set(queryParamPageSize, strconv.Itoa(s.PageSize))
	}
	if !s.From.IsZero() {
		q.Set(queryParamFrom, s.From.Format(queryDateLayout))
	}
	if !s.To.IsZero() {
		q.Set(queryParamTo, s.To.Format(queryDateLayout))
	}
	if s.Notice != "" {
		q.Set(queryParamNotice, s.Notice)
	}
	return q
}

func (s State) URL() string {
	if q := s.Query().Encode(); q != "" {
		return s.Path() + "?" + q
	}
	return s.Path()
}

// TabURL links to another tab of the same workout. Tab-specific selections are dropped.
func (s State) TabURL(tab Tab) string {
	return State{Page: PageWorkout, Workout: s.Workout, Tab: tab}.URL()
}

// HistoryPageURL keeps the history filters and moves to page n.
func (s State) HistoryPageURL(n int) string {
	next := State{
		Page:        PageWorkout,
		Workout:     s.Workout,
		Tab:         TabHistory,
		HistoryPage: n,
		PageSize:    s.PageSize,
		From:        s.From,
		To:          s.To,
	}
	return next.URL()
}

// pathVar returns a route variable decoded. Routes match the escaped path so a name
// holding "/" stays one segment; a malformed escape is kept as sent.
func pathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func WorkoutURL(name string) string {
	return State{Page: PageWorkout, Workout: name}.URL()
}

func formatQueryDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(queryDateLayout)
}
