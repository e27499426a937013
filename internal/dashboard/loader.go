package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/2beens/fitnessdash/internal/cache"
	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/stats"
	"github.com/2beens/fitnessdash/internal/telemetry/metrics"
	"github.com/2beens/fitnessdash/internal/telemetry/tracing"
	"github.com/2beens/fitnessdash/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=loader_mocks_test.go -package=dashboard_test

type sheetSource interface {
	Fetch(ctx context.Context) (*spreadsheet.Table, error)
	Header(ctx context.Context) ([]string, error)
	Name() string
}

const datasetCacheKey = "dataset"

// snapshot is what gets cached: the raw rows, so a cached load still normalizes with the current rules.
type snapshot struct {
	Table     *spreadsheet.Table `json:"table"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Dataset is everything a page needs, derived from one fetch.
type Dataset struct {
	SourceName string              `json:"source_name"`
	Raw        *spreadsheet.Table  `json:"-"`
	Table      *workouts.Table     `json:"-"`
	Movements  []workouts.Movement `json:"-"`
	Report     workouts.Report     `json:"report"`
	FetchedAt  time.Time           `json:"fetched_at"`
	Cached     bool                `json:"cached"`
	Warnings   []string            `json:"warnings"`
}

// NewDataset cleans the raw table, extracts movements and validates the structure.
func NewDataset(sourceName string, raw *spreadsheet.Table, fetchedAt time.Time, cached bool) *Dataset {
	table := workouts.Normalize(raw)

	ds := &Dataset{
		SourceName: sourceName,
		Raw:        raw,
		Table:      table,
		Movements:  workouts.ExtractMovements(table),
		Report:     workouts.Validate(table),
		FetchedAt:  fetchedAt,
		Cached:     cached,
		Warnings:   []string{},
	}
	if raw != nil {
		ds.Warnings = append(ds.Warnings, raw.Warnings...)
	}

	return ds
}

func (d *Dataset) IsEmpty() bool {
	return d == nil || d.Table.IsEmpty()
}

// Workout narrows the dataset to one workout type. Raw rows are not filtered.
func (d *Dataset) Workout(name string) *Dataset {
	filtered := *d
	filtered.Table = d.Table.ForWorkout(name)
	filtered.Movements = make([]workouts.Movement, 0)
	for _, m := range d.Movements {
		if m.Workout == name {
			filtered.Movements = append(filtered.Movements, m)
		}
	}
	return &filtered
}

func (d *Dataset) HasWorkout(name string) bool {
	for _, w := range workouts.UniqueWorkouts(d.Table) {
		if w == name {
			return true
		}
	}
	return false
}

// MovementsFor narrows the movements to one workout, all of them when workout is empty.
// An empty dataset has no workouts to miss, so it never fails.
func (d *Dataset) MovementsFor(workout string) ([]workouts.Movement, error) {
	if workout == "" || d.IsEmpty() {
		return stats.ForWorkout(d.Movements, workout), nil
	}
	if !d.HasWorkout(workout) {
		return nil, fmt.Errorf("%w: %s", ErrWorkoutNotFound, workout)
	}
	return stats.ForWorkout(d.Movements, workout), nil
}

type LoaderParams struct {
	Source          sheetSource
	Store           cache.Store
	RefreshInterval time.Duration
	MetricsManager  *metrics.Manager
}

// Loader serves the dataset from the cache and refetches the sheet once the refresh interval passed.
type Loader struct {
	source          sheetSource
	cache           *cache.Expiring[snapshot]
	metricsManager  *metrics.Manager
	refreshInterval time.Duration

	// why the last fetched snapshot is not in the cache, nil once it is
	storeErr atomic.Pointer[error]
}

func NewLoader(params LoaderParams) (*Loader, error) {
	if params.Source == nil {
		return nil, errors.New("loader needs a sheet source")
	}
	if params.Store == nil {
		return nil, errors.New("loader needs a cache store")
	}
	if params.MetricsManager == nil {
		params.MetricsManager = metrics.NewTestManager()
	}

	l := &Loader{
		source:          params.Source,
		metricsManager:  params.MetricsManager,
		refreshInterval: params.RefreshInterval,
	}

	expiring, err := cache.NewExpiring(params.Store, datasetCacheKey, params.RefreshInterval, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("dataset cache: %w", err)
	}
	expiring.SetStoreErrorHandler(func(err error) {
		l.metricsManager.CounterCacheStoreErrors.Inc()
		l.storeErr.Store(&err)
	})
	l.cache = expiring

	return l, nil
}

func (l *Loader) SourceName() string {
	return l.source.Name()
}

func (l *Loader) RefreshInterval() time.Duration {
	return l.refreshInterval
}

func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.loader.load")
	var err error
	defer func() {
		tracing.EndWithError(span, err)
	}()

	snap, cached, err := l.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	if cached {
		l.metricsManager.CounterCacheHits.Inc()
	} else {
		l.metricsManager.CounterCacheMisses.Inc()
	}
	span.SetAttributes(attribute.Bool("cached", cached))

	ds := NewDataset(l.source.Name(), snap.Table, snap.FetchedAt, cached)
	if storeErr := l.storeErr.Load(); !cached && storeErr != nil {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("Sheet data could not be cached, every page load reads the sheet again: %s", *storeErr))
	}
	span.SetAttributes(attribute.Int("sessions", ds.Table.Len()), attribute.Int("movements", len(ds.Movements)))

	return ds, nil
}

// Refresh drops the cached dataset; the next Load fetches the sheet again.
func (l *Loader) Refresh(ctx context.Context) error {
	l.metricsManager.CounterRefreshes.Inc()
	if err := l.cache.Clear(ctx); err != nil {
		return err
	}
	log.Infof("dataset cache of %s cleared", l.source.Name())
	return nil
}

func (l *Loader) TestConnection(ctx context.Context) spreadsheet.ConnectionStatus {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.loader.testConnection")
	defer span.End()

	status := spreadsheet.TestConnection(ctx, l.source)
	span.SetAttributes(attribute.Bool("ok", status.OK))

	return status
}

func (l *Loader) fetch(ctx context.Context) (snapshot, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.loader.fetch")
	var err error
	defer func() {
		tracing.EndWithError(span, err)
	}()

	l.storeErr.Store(nil)

	begin := time.Now()
	table, err := l.source.Fetch(ctx)
	l.metricsManager.HistogramFetchDuration.Observe(time.Since(begin).Seconds())
	l.metricsManager.CounterSheetFetches.WithLabelValues(fetchResult(err)).Inc()
	if err != nil {
		log.Errorf("fetch %s: %s", l.source.Name(), err)
		return snapshot{}, err
	}

	l.metricsManager.GaugeSheetRows.Set(float64(table.Len()))
	log.Debugf("fetched %d rows from %s in %s", table.Len(), l.source.Name(), time.Since(begin))

	return snapshot{Table: table, FetchedAt: time.Now()}, nil
}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return metrics.FetchResultOK
	case errors.Is(err, spreadsheet.ErrSpreadsheetNotFound), errors.Is(err, spreadsheet.ErrWorksheetNotFound):
		return metrics.FetchResultNotFound
	case errors.Is(err, spreadsheet.ErrUnavailable):
		return metrics.FetchResultUnavailable
	default:
		return metrics.FetchResultError
	}
}
