package dashboard

import (
	"fmt"
	"html/template"

	"github.com/2beens/fitnessdash/internal/stats"
)

// palette
const (
	colorPrimary   = "#FF6B6B"
	colorSecondary = "#4ECDC4"
	colorAccent    = "#45B7D1"
	colorSuccess   = "#96CEB4"
	colorWarning   = "#FFEAA7"
	colorInfo      = "#DDA0DD"
)

var seriesColors = []string{colorPrimary, colorSecondary, colorAccent, colorSuccess, colorInfo, colorWarning, "#6C5CE7", "#FD9644"}

// Chart is a Chart.js configuration. It is marshalled as-is into the page.
type Chart struct {
	ID      string         `json:"-"`
	Title   string         `json:"-"`
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label           string     `json:"label"`
	Type            string     `json:"type,omitempty"`
	Data            []*float64 `json:"data"`
	BackgroundColor any        `json:"backgroundColor,omitempty"`
	BorderColor     string     `json:"borderColor,omitempty"`
	BorderDash      []int      `json:"borderDash,omitempty"`
	PointRadius     *int       `json:"pointRadius,omitempty"`
	Fill            bool       `json:"fill"`
	SpanGaps        bool       `json:"spanGaps"`
}

// Empty is true when there is nothing to draw; templates show a placeholder instead.
func (c Chart) Empty() bool {
	return len(c.Data.Labels) == 0
}

// Config is the JSON handed to new Chart(...).
func (c Chart) Config() template.JS {
	return toJS(c)
}

func baseOptions(title string, extra map[string]any) map[string]any {
	opts := map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]any{
			"title": map[string]any{"display": title != "", "text": title},
		},
	}
	for k, v := range extra {
		opts[k] = v
	}
	return opts
}

func axisTitles(x, y string) map[string]any {
	return map[string]any{
		"x": map[string]any{"title": map[string]any{"display": x != "", "text": x}},
		"y": map[string]any{"title": map[string]any{"display": y != "", "text": y}, "beginAtZero": true},
	}
}

func ptr(v float64) *float64 {
	return &v
}

func seriesColor(i int) string {
	return seriesColors[i%len(seriesColors)]
}

func countItemsData(items []stats.CountItem) ([]string, []*float64) {
	labels := make([]string, 0, len(items))
	data := make([]*float64, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
		data = append(data, ptr(float64(item.Count)))
	}
	return labels, data
}

// FrequencyChart is a horizontal bar chart of the most frequent workouts.
func FrequencyChart(items []stats.CountItem) Chart {
	labels, data := countItemsData(items)
	title := fmt.Sprintf("Most Frequent Workouts (Top %d)", stats.DefaultFrequencyLimit)
	return Chart{
		ID:    "workout-frequency",
		Title: title,
		Type:  "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           "Number of Sessions",
				Data:            data,
				BackgroundColor: colorAccent,
			}},
		},
		Options: baseOptions(title, map[string]any{
			"indexAxis": "y",
			"scales":    axisTitles("Number of Sessions", "Workout Type"),
		}),
	}
}

// TimelineChart plots sessions per day.
func TimelineChart(days []stats.DailyCount) Chart {
	labels := make([]string, 0, len(days))
	data := make([]*float64, 0, len(days))
	for _, d := range days {
		labels = append(labels, d.Date.Format(queryDateLayout))
		data = append(data, ptr(float64(d.Count)))
	}
	title := "Workout Activity Over Time"
	return Chart{
		ID:    "activity-timeline",
		Title: title,
		Type:  "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:       "Number of Workouts",
				Data:        data,
				BorderColor: colorPrimary,
			}},
		},
		Options: baseOptions(title, map[string]any{"scales": axisTitles("Date", "Number of Workouts")}),
	}
}

// DistributionChart is a pie of the most logged movements.
func DistributionChart(id string, items []stats.CountItem, workout string) Chart {
	labels, data := countItemsData(items)
	title := "Movement Distribution"
	if workout != "" {
		title += " - " + workout
	}
	colors := make([]string, len(labels))
	for i := range colors {
		colors[i] = seriesColor(i)
	}
	return Chart{
		ID:    id,
		Title: title,
		Type:  "pie",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           "Entries",
				Data:            data,
				BackgroundColor: colors,
			}},
		},
		Options: baseOptions(title, nil),
	}
}

// SessionsPerPeriodChart is a bar chart of session counts per period.
func SessionsPerPeriodChart(workout string, period stats.Period, counts []stats.PeriodCount) Chart {
	labels := make([]string, 0, len(counts))
	data := make([]*float64, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
		data = append(data, ptr(float64(c.Count)))
	}
	title := fmt.Sprintf("%s - Sessions per %s", workout, periodUnit(period))
	return Chart{
		ID:    "sessions-per-period",
		Title: title,
		Type:  "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           "Number of Sessions",
				Data:            data,
				BackgroundColor: colorSecondary,
			}},
		},
		Options: baseOptions(title, map[string]any{"scales": axisTitles(periodUnit(period), "Number of Sessions")}),
	}
}

func periodUnit(p stats.Period) string {
	switch p {
	case stats.Weekly:
		return "Week"
	case stats.Quarterly:
		return "Quarter"
	default:
		return "Month"
	}
}

// ProgressChart draws one line per movement over the union of period labels.
// A movement without entries in a period leaves a gap.
func ProgressChart(id, title, yLabel string, period stats.Period, series []stats.ProgressSeries, value func(stats.PeriodBucket) *float64) Chart {
	labels := stats.PeriodLabels(series)
	datasets := make([]ChartDataset, 0, len(series))
	for i, s := range series {
		byLabel := make(map[string]*float64, len(s.Buckets))
		for _, b := range s.Buckets {
			byLabel[b.Label] = value(b)
		}
		data := make([]*float64, len(labels))
		for j, l := range labels {
			data[j] = byLabel[l]
		}
		datasets = append(datasets, ChartDataset{
			Label:       s.Movement,
			Data:        data,
			BorderColor: seriesColor(i),
			SpanGaps:    true,
		})
	}
	return Chart{
		ID:      id,
		Title:   title,
		Type:    "line",
		Data:    ChartData{Labels: labels, Datasets: datasets},
		Options: baseOptions(title, map[string]any{"scales": axisTitles(period.Title(), yLabel)}),
	}
}

// TrendChart draws the entries of a movement with the fitted trend line on top.
func TrendChart(id string, trend stats.Trend) Chart {
	labels := make([]string, 0, len(trend.Points))
	values := make([]*float64, 0, len(trend.Points))
	fitted := make([]*float64, 0, len(trend.Points))
	for _, p := range trend.Points {
		labels = append(labels, p.Date.Format(queryDateLayout))
		values = append(values, ptr(p.Value))
		if trend.Fitted {
			fitted = append(fitted, ptr(trend.FitAt(p.Date)))
		}
	}

	datasets := []ChartDataset{{
		Label:       trend.Metric.Title(),
		Data:        values,
		BorderColor: colorAccent,
	}}
	if trend.Fitted {
		noPoints := 0
		datasets = append(datasets, ChartDataset{
			Label:       "Trend",
			Data:        fitted,
			BorderColor: colorPrimary,
			BorderDash:  []int{6, 4},
			PointRadius: &noPoints,
		})
	}

	title := fmt.Sprintf("%s - %s Progress Over Time", trend.Movement, trend.Metric.Title())
	return Chart{
		ID:      id,
		Title:   title,
		Type:    "line",
		Data:    ChartData{Labels: labels, Datasets: datasets},
		Options: baseOptions(title, map[string]any{"scales": axisTitles("Date", trend.Metric.Title())}),
	}
}

// HistogramChart draws binned counts, e.g. the reps distribution of a movement.
func HistogramChart(id, title string, bins []stats.HistogramBin) Chart {
	labels := make([]string, 0, len(bins))
	data := make([]*float64, 0, len(bins))
	for _, b := range bins {
		labels = append(labels, b.Label)
		data = append(data, ptr(float64(b.Count)))
	}
	return Chart{
		ID:    id,
		Title: title,
		Type:  "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           "Count",
				Data:            data,
				BackgroundColor: colorSuccess,
			}},
		},
		Options: baseOptions(title, map[string]any{"scales": axisTitles("", "Count")}),
	}
}
