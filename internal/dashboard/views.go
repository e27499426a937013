package dashboard

import (
	"fmt"
	"time"

	"github.com/2beens/fitnessdash/internal/stats"
	"github.com/2beens/fitnessdash/internal/workouts"

	"gonum.org/v1/gonum/stat"
)

var notices = map[string]string{
	"refreshed":     "Cache cleared! Data will refresh on next load.",
	"refresh_error": "Cache could not be cleared, data will refresh when the interval passes.",
}

func NoticeMessage(code string) string {
	return notices[code]
}

type MetricCard struct {
	Title string
	Value string
	Help  string
}

type HomeView struct {
	Connected    bool
	TotalRecords int
	Cards        []MetricCard
}

// BuildHomeView previews the data; a nil or empty dataset shows as not connected.
func BuildHomeView(ds *Dataset) HomeView {
	if ds.IsEmpty() {
		return HomeView{}
	}
	summary := stats.Summarize(ds.Table, ds.Movements)
	return HomeView{
		Connected:    true,
		TotalRecords: ds.Table.Len(),
		Cards: []MetricCard{
			{Title: "Total Records", Value: fmt.Sprint(summary.TotalSessions)},
			{Title: "Workout Types", Value: fmt.Sprint(summary.UniqueWorkouts)},
			{Title: "Unique Movements", Value: fmt.Sprint(summary.UniqueMovements)},
			{Title: "Date Range", Value: summary.DateRange},
		},
	}
}

type TableView struct {
	Columns []string
	Rows    [][]string
}

type SummaryView struct {
	Summary           stats.DataSummary
	Cards             []MetricCard
	FrequencyChart    Chart
	TimelineChart     Chart
	DistributionChart Chart
	StatsTable        []stats.StatRow
	Issues            []string
	Warnings          []string
	Preview           TableView
}

func BuildSummaryView(ds *Dataset) SummaryView {
	summary := stats.Summarize(ds.Table, ds.Movements)

	lastSession := "N/A"
	if summary.LastDate != nil {
		lastSession = summary.LastDate.Format(queryDateLayout)
	}

	preview := TableView{Columns: []string{}, Rows: ds.Raw.Preview(DefaultPreviewRows)}
	if ds.Raw != nil {
		preview.Columns = ds.Raw.Columns
	}

	return SummaryView{
		Summary: summary,
		Cards: []MetricCard{
			{Title: "Total Sessions", Value: fmt.Sprint(summary.TotalSessions)},
			{Title: "Workout Types", Value: fmt.Sprint(summary.UniqueWorkouts)},
			{Title: "Unique Movements", Value: fmt.Sprint(summary.UniqueMovements)},
			{Title: "Total Volume", Value: stats.FormatNumber(summary.TotalVolume), Help: "weight x reps x sets"},
			{Title: "Last Session", Value: lastSession, Help: summary.DateRange},
		},
		FrequencyChart:    FrequencyChart(stats.WorkoutFrequency(ds.Table, stats.DefaultFrequencyLimit)),
		TimelineChart:     TimelineChart(stats.ActivityTimeline(ds.Table)),
		DistributionChart: DistributionChart("movement-distribution", stats.MovementDistribution(ds.Movements, stats.DefaultDistributionLimit), ""),
		StatsTable:        stats.SummaryTable(ds.Table, ds.Movements),
		Issues:            ds.Report.Issues,
		Warnings:          ds.Warnings,
		Preview:           preview,
	}
}

type WorkoutTypesView struct {
	Cards []stats.WorkoutTypeCard
}

func BuildWorkoutTypesView(ds *Dataset, now time.Time) WorkoutTypesView {
	return WorkoutTypesView{Cards: stats.WorkoutTypeCards(ds.Table, now)}
}

type TabLink struct {
	Tab    Tab
	Title  string
	URL    string
	Active bool
}

type WorkoutView struct {
	Name string
	Tabs []TabLink
	Tab  Tab

	Overview *OverviewView
	Trends   *TrendsView
	Analysis *AnalysisView
	History  *HistoryView
	Goals    *GoalsView
}

// BuildWorkoutView builds the active tab only. ds must already be narrowed to the workout.
func BuildWorkoutView(ds *Dataset, st State, now time.Time) WorkoutView {
	view := WorkoutView{
		Name: st.Workout,
		Tab:  st.Tab,
	}
	for _, t := range Tabs {
		view.Tabs = append(view.Tabs, TabLink{
			Tab:    t,
			Title:  t.Title(),
			URL:    st.TabURL(t),
			Active: t == st.Tab,
		})
	}

	switch st.Tab {
	case TabTrends:
		v := BuildTrendsView(ds, st)
		view.Trends = &v
	case TabMovements:
		v := BuildAnalysisView(ds, st)
		view.Analysis = &v
	case TabHistory:
		v := BuildHistoryView(ds, st)
		view.History = &v
	case TabGoals:
		v := BuildGoalsView(ds, st)
		view.Goals = &v
	default:
		v := BuildOverviewView(ds, st.Workout, now)
		view.Overview = &v
	}

	return view
}

type RecentSession struct {
	Date      string
	Workout   string
	StartTime string
}

type OverviewView struct {
	Cards             []MetricCard
	SessionsChart     Chart
	DistributionChart Chart
	Recent            []RecentSession
	HasMovements      bool
}

func BuildOverviewView(ds *Dataset, workout string, now time.Time) OverviewView {
	daysTracked, daysSinceLast := 0, 0
	if first, last, ok := ds.Table.DateRange(); ok {
		daysTracked = int(last.Sub(first).Hours() / 24)
		daysSinceLast = max(0, int(now.Sub(last).Hours()/24))
	}

	view := OverviewView{
		Cards: []MetricCard{
			{Title: "Total Sessions", Value: fmt.Sprint(ds.Table.Len())},
			{Title: "Days Tracked", Value: fmt.Sprint(daysTracked)},
			{Title: "Days Since Last", Value: fmt.Sprint(daysSinceLast)},
		},
		HasMovements: len(ds.Movements) > 0,
		Recent:       []RecentSession{},
	}

	if view.HasMovements {
		view.Cards = append(view.Cards,
			MetricCard{Title: "Unique Movements", Value: fmt.Sprint(len(stats.MovementNames(ds.Movements)))},
			MetricCard{Title: "Total Volume", Value: stats.FormatNumber(stats.TotalVolume(ds.Movements))},
		)
		view.SessionsChart = SessionsPerPeriodChart(workout, stats.Monthly, stats.SessionsPerPeriod(ds.Table, stats.Monthly))
		view.DistributionChart = DistributionChart("workout-distribution", stats.MovementDistribution(ds.Movements, stats.DefaultDistributionLimit), workout)
	}

	for _, s := range ds.Table.SortedByDate() {
		if !s.HasDate() || len(view.Recent) == DefaultRecentSessions {
			break
		}
		rs := RecentSession{Date: s.Date.Format(queryDateLayout), Workout: s.Workout}
		if s.HasStartTime() {
			rs.StartTime = s.StartTime.Format("15:04")
		}
		view.Recent = append(view.Recent, rs)
	}

	return view
}

type RecordRow struct {
	Movement       string
	MaxWeight      string
	MaxWeightDate  string
	MaxReps        string
	MaxRepsDate    string
	BestVolume     string
	BestVolumeDate string
}

type TrendsView struct {
	Available       []string
	Selected        []string
	Period          stats.Period
	Periods         []stats.Period
	MaxWeightChart  Chart
	VolumeChart     Chart
	Records         []RecordRow
	NothingSelected bool
}

func BuildTrendsView(ds *Dataset, st State) TrendsView {
	view := TrendsView{
		Available: stats.MovementNames(ds.Movements),
		Period:    st.Period,
		Periods:   stats.Periods,
		Records:   []RecordRow{},
	}

	view.Selected = knownMovements(view.Available, st.Movements)
	if len(st.Movements) == 0 {
		view.Selected = view.Available[:min(DefaultTrendMovements, len(view.Available))]
	}
	if len(view.Selected) == 0 {
		view.NothingSelected = true
		return view
	}

	series := stats.MovementProgress(ds.Movements, view.Selected, st.Period)
	view.MaxWeightChart = ProgressChart(
		"max-weight-progression",
		fmt.Sprintf("Max Weight Progression (%s)", st.Period.Title()),
		"Max Weight", st.Period, series,
		func(b stats.PeriodBucket) *float64 { return b.MaxWeight },
	)
	view.VolumeChart = ProgressChart(
		"volume-progression",
		fmt.Sprintf("Volume Progression (%s)", st.Period.Title()),
		"Total Volume", st.Period, series,
		func(b stats.PeriodBucket) *float64 { return ptr(b.Volume) },
	)

	for _, pr := range stats.PersonalRecords(ds.Movements, view.Selected) {
		view.Records = append(view.Records, RecordRow{
			Movement:       pr.Movement,
			MaxWeight:      recordValue(pr.MaxWeight, "%s lbs"),
			MaxWeightDate:  recordDate(pr.MaxWeight),
			MaxReps:        recordValue(pr.MaxReps, "%s reps"),
			MaxRepsDate:    recordDate(pr.MaxReps),
			BestVolume:     recordValue(pr.BestVolume, "%s"),
			BestVolumeDate: recordDate(pr.BestVolume),
		})
	}

	return view
}

// knownMovements keeps the requested names that exist, in the spelling of the data.
func knownMovements(available, requested []string) []string {
	byKey := make(map[string]string, len(available))
	for _, a := range available {
		byKey[workouts.MovementKey(a)] = a
	}
	known := make([]string, 0, len(requested))
	seen := make(map[string]bool)
	for _, r := range requested {
		name, ok := byKey[workouts.MovementKey(r)]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		known = append(known, name)
	}
	return known
}

func recordValue(rv *stats.RecordValue, format string) string {
	if rv == nil {
		return "-"
	}
	return fmt.Sprintf(format, stats.FormatNumber(rv.Value))
}

func recordDate(rv *stats.RecordValue) string {
	if rv == nil || rv.Date == nil {
		return "-"
	}
	return rv.Date.Format(queryDateLayout)
}

type DetailRow struct {
	Date   string
	Weight string
	Reps   string
	Sets   string
	Volume string
}

type AnalysisView struct {
	Available   []string
	Selected    string
	Cards       []MetricCard
	WeightChart Chart
	RepsChart   Chart
	Details     []DetailRow
}

func BuildAnalysisView(ds *Dataset, st State) AnalysisView {
	view := AnalysisView{
		Available: stats.MovementNames(ds.Movements),
		Details:   []DetailRow{},
	}
	if len(view.Available) == 0 {
		return view
	}

	view.Selected = view.Available[0]
	if selected := knownMovements(view.Available, []string{st.Movement}); len(selected) == 1 {
		view.Selected = selected[0]
	}

	entries := stats.FilterMovements(ds.Movements, view.Selected)
	var maxWeight *float64
	var totalReps float64
	var sets, reps []float64
	for _, m := range entries {
		if m.Weight != nil {
			maxWeight = maxOf(maxWeight, *m.Weight)
		}
		if m.Reps != nil {
			totalReps += *m.Reps
			reps = append(reps, *m.Reps)
		}
		if m.Sets != nil {
			sets = append(sets, *m.Sets)
		}
	}

	avgSets := "N/A"
	if len(sets) > 0 {
		avgSets = fmt.Sprintf("%.1f", stat.Mean(sets, nil))
	}
	view.Cards = []MetricCard{
		{Title: "Sessions Performed", Value: fmt.Sprint(len(entries))},
		{Title: "Max Weight", Value: optional(maxWeight, "%s lbs")},
		{Title: "Total Reps", Value: stats.FormatNumber(totalReps)},
		{Title: "Avg Sets", Value: avgSets},
	}

	view.WeightChart = TrendChart("weight-progression", stats.MovementTrend(ds.Movements, view.Selected, stats.MetricWeight))
	view.RepsChart = HistogramChart(
		"reps-distribution",
		fmt.Sprintf("%s - Reps Distribution", view.Selected),
		stats.Histogram(reps, stats.DefaultHistogramBins),
	)

	for _, m := range stats.MovementDetails(ds.Movements, view.Selected, DefaultDetailsLimit) {
		view.Details = append(view.Details, DetailRow{
			Date:   dateOrDash(m.Date),
			Weight: optional(m.Weight, "%s"),
			Reps:   optional(m.Reps, "%s"),
			Sets:   optional(m.Sets, "%s"),
			Volume: stats.FormatNumber(m.Volume()),
		})
	}

	return view
}

func maxOf(current *float64, v float64) *float64 {
	if current == nil || v > *current {
		return &v
	}
	return current
}

func optional(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, stats.FormatNumber(*v))
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(queryDateLayout)
}

type Field struct {
	Column string
	Value  string
}

type SessionView struct {
	Title     string
	Fields    []Field
	Movements int
	Volume    string
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

type HistoryView struct {
	MinDate    string
	MaxDate    string
	From       string
	To         string
	PageSize   int
	PageSizes  []int
	Page       int
	TotalPages int
	Total      int
	Pages      []PageLink
	Sessions   []SessionView
}

func BuildHistoryView(ds *Dataset, st State) HistoryView {
	view := HistoryView{
		From:      formatQueryDate(st.From),
		To:        formatQueryDate(st.To),
		PageSize:  st.PageSize,
		PageSizes: PageSizes,
		Sessions:  []SessionView{},
	}
	if view.PageSize <= 0 {
		view.PageSize = DefaultPageSize
	}
	if first, last, ok := ds.Table.DateRange(); ok {
		view.MinDate = first.Format(queryDateLayout)
		view.MaxDate = last.Format(queryDateLayout)
	}

	filtered := ds.Table.Between(st.From, st.To)
	sorted := filtered.SortedByDate()
	view.Total = len(sorted)
	view.TotalPages = max(1, (view.Total+view.PageSize-1)/view.PageSize)
	view.Page = min(max(1, st.HistoryPage), view.TotalPages)

	if view.TotalPages > 1 {
		for n := 1; n <= view.TotalPages; n++ {
			view.Pages = append(view.Pages, PageLink{Number: n, URL: st.HistoryPageURL(n), Current: n == view.Page})
		}
	}

	start := (view.Page - 1) * view.PageSize
	end := min(start+view.PageSize, view.Total)
	totals := stats.BySession(ds.Movements)

	for _, s := range sorted[start:end] {
		sv := SessionView{
			Title:     "Session " + sessionTitle(s),
			Fields:    []Field{},
			Movements: totals[s.Index].Movements,
			Volume:    stats.FormatNumber(totals[s.Index].Volume),
		}
		for _, col := range ds.Table.Columns {
			if col == workouts.ColumnDate || col == workouts.ColumnWorkout {
				continue
			}
			if v := s.Value(col); v != "" {
				sv.Fields = append(sv.Fields, Field{Column: col, Value: v})
			}
		}
		view.Sessions = append(view.Sessions, sv)
	}

	return view
}

func sessionTitle(s workouts.Session) string {
	if !s.HasDate() {
		return "Unknown Date"
	}
	return s.Date.Format(queryDateLayout)
}

type GoalsView struct {
	Available []string
	Selected  string
	GoalTypes []string
	GoalType  string
	GoalValue string
	GoalDate  string
	// Confirmation echoes a submitted goal. Goals are not stored.
	Confirmation string
	Cards        []MetricCard
}

func BuildGoalsView(ds *Dataset, st State) GoalsView {
	view := GoalsView{
		Available: stats.MovementNames(ds.Movements),
		GoalTypes: GoalTypes,
		GoalType:  GoalTypes[0],
		GoalDate:  formatQueryDate(st.GoalDate),
	}
	if st.GoalValue > 0 {
		view.GoalValue = stats.FormatNumber(st.GoalValue)
	}
	for _, gt := range GoalTypes {
		if gt == st.GoalType {
			view.GoalType = gt
		}
	}
	if len(view.Available) == 0 {
		return view
	}

	view.Selected = view.Available[0]
	if selected := knownMovements(view.Available, []string{st.Movement}); len(selected) == 1 {
		view.Selected = selected[0]
	}

	if st.GoalSubmitted() {
		by := view.GoalDate
		if by == "" {
			by = "no target date"
		}
		view.Confirmation = fmt.Sprintf("Goal set: %s of %s for %s by %s", view.GoalType, stats.FormatNumber(st.GoalValue), view.Selected, by)
	}

	entries := stats.FilterMovements(ds.Movements, view.Selected)
	var currentMax *float64
	for _, m := range entries {
		if m.Weight != nil {
			currentMax = maxOf(currentMax, *m.Weight)
		}
	}
	view.Cards = []MetricCard{
		{Title: "Current Max Weight", Value: optional(currentMax, "%s lbs")},
		{Title: "Total Volume (All Time)", Value: stats.FormatNumber(stats.TotalVolume(entries))},
		{Title: "Sessions Performed", Value: fmt.Sprint(len(entries))},
	}

	return view
}

type ProgressView struct {
	Workouts  []string
	Workout   string
	Available []string
	Selected  string
	Metric    stats.Metric
	Metrics   []stats.Metric
	Trend     stats.Trend
	Chart     Chart
	Summary   []MetricCard
}

// BuildProgressView tracks one movement across all workouts, or within one when filtered.
func BuildProgressView(ds *Dataset, st State) ProgressView {
	view := ProgressView{
		Workouts: workouts.UniqueWorkouts(ds.Table),
		Metric:   st.Metric,
		Metrics:  stats.Metrics,
	}

	movements := ds.Movements
	if st.Workout != "" && ds.HasWorkout(st.Workout) {
		view.Workout = st.Workout
		movements = stats.ForWorkout(movements, st.Workout)
	}

	view.Available = stats.MovementNames(movements)
	if len(view.Available) == 0 {
		return view
	}
	view.Selected = view.Available[0]
	if selected := knownMovements(view.Available, []string{st.Movement}); len(selected) == 1 {
		view.Selected = selected[0]
	}

	view.Trend = stats.MovementTrend(movements, view.Selected, st.Metric)
	view.Chart = TrendChart("movement-trend", view.Trend)

	if len(view.Trend.Points) > 0 {
		change := stats.FormatNumber(view.Trend.Delta)
		if view.Trend.DeltaPercent != nil {
			change = fmt.Sprintf("%s (%.1f%%)", change, *view.Trend.DeltaPercent)
		}
		view.Summary = []MetricCard{
			{Title: "Entries", Value: fmt.Sprint(len(view.Trend.Points))},
			{Title: "First", Value: stats.FormatNumber(view.Trend.First)},
			{Title: "Latest", Value: stats.FormatNumber(view.Trend.Last)},
			{Title: "Change", Value: change},
		}
		if view.Trend.Fitted {
			view.Summary = append(view.Summary, MetricCard{
				Title: "Trend per Week",
				Value: fmt.Sprintf("%+.2f", view.Trend.Slope*7),
			})
		}
	}

	return view
}
