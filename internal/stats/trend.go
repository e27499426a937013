package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/workouts"

	"gonum.org/v1/gonum/stat"
)

type Metric string

const (
	MetricWeight Metric = "weight"
	MetricReps   Metric = "reps"
	MetricSets   Metric = "sets"
	MetricVolume Metric = "volume"
)

var Metrics = []Metric{MetricWeight, MetricReps, MetricSets, MetricVolume}

// ParseMetric defaults to weight for unknown input.
func ParseMetric(s string) Metric {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricReps:
		return MetricReps
	case MetricSets:
		return MetricSets
	case MetricVolume:
		return MetricVolume
	default:
		return MetricWeight
	}
}

func (m Metric) Title() string {
	switch m {
	case MetricReps:
		return "Reps"
	case MetricSets:
		return "Sets"
	case MetricVolume:
		return "Volume"
	default:
		return "Weight"
	}
}

// value of the metric for one movement, false when the metric was not logged
func (m Metric) value(mv workouts.Movement) (float64, bool) {
	var v *float64
	switch m {
	case MetricReps:
		v = mv.Reps
	case MetricSets:
		v = mv.Sets
	case MetricVolume:
		return mv.Volume(), true
	default:
		v = mv.Weight
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type Trend struct {
	Movement string       `json:"movement"`
	Metric   Metric       `json:"metric"`
	Points   []TrendPoint `json:"points"`
	First    float64      `json:"first"`
	Last     float64      `json:"last"`
	Delta    float64      `json:"delta"`
	// DeltaPercent is nil when the first value is zero.
	DeltaPercent *float64 `json:"delta_percent"`
	// Slope is the least-squares change per day, Intercept the fitted value on the first point's day.
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Fitted    bool    `json:"fitted"`
}

// FitAt evaluates the fitted line at the given date.
func (t Trend) FitAt(date time.Time) float64 {
	if !t.Fitted || len(t.Points) == 0 {
		return 0
	}
	return t.Intercept + t.Slope*daysSince(t.Points[0].Date, date)
}

// MovementTrend orders the dated entries of a movement and computes the first-vs-last delta
// and a linear least-squares fit. The fit needs at least two points on distinct days.
func MovementTrend(movements []workouts.Movement, name string, metric Metric) Trend {
	trend := Trend{
		Movement: name,
		Metric:   metric,
		Points:   []TrendPoint{},
	}

	selected := FilterMovements(movements, name)
	if len(selected) > 0 {
		trend.Movement = selected[0].Name
	}

	for _, m := range selected {
		if !m.HasDate() {
			continue
		}
		v, ok := metric.value(m)
		if !ok {
			continue
		}
		trend.Points = append(trend.Points, TrendPoint{Date: m.Date, Value: v})
	}

	sort.SliceStable(trend.Points, func(i, j int) bool {
		return trend.Points[i].Date.Before(trend.Points[j].Date)
	})

	if len(trend.Points) == 0 {
		return trend
	}

	trend.First = trend.Points[0].Value
	trend.Last = trend.Points[len(trend.Points)-1].Value
	trend.Delta = trend.Last - trend.First
	if trend.First != 0 {
		pct := trend.Delta / trend.First * 100
		trend.DeltaPercent = &pct
	}

	xs := make([]float64, len(trend.Points))
	ys := make([]float64, len(trend.Points))
	origin := trend.Points[0].Date
	for i, p := range trend.Points {
		xs[i] = daysSince(origin, p.Date)
		ys[i] = p.Value
	}

	if len(xs) >= 2 && xs[len(xs)-1] > xs[0] {
		trend.Intercept, trend.Slope = stat.LinearRegression(xs, ys, nil, false)
		trend.Fitted = true
	}

	return trend
}

func daysSince(origin, t time.Time) float64 {
	return t.Sub(origin).Hours() / 24
}
