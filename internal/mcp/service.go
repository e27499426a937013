package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/stats"
)

// datasetLoader is satisfied by *dashboard.Loader.
type datasetLoader interface {
	Load(ctx context.Context) (*dashboard.Dataset, error)
}

// contextService answers the tool calls from the loaded dataset.
type contextService interface {
	Summary(ctx context.Context) (*dashboard.SummaryResponse, error)
	WorkoutTypes(ctx context.Context) ([]stats.WorkoutTypeCard, error)
	MovementStats(ctx context.Context, workout string) ([]stats.MovementStat, error)
	MovementTrend(ctx context.Context, movement string, metric stats.Metric, workout string) (*stats.Trend, error)
	PersonalRecords(ctx context.Context, workout string, movements []string) ([]stats.PersonalRecord, error)
	Validate(ctx context.Context) (*dashboard.ValidationResponse, error)
}

type ContextService struct {
	loader datasetLoader
	now    func() time.Time
}

func NewContextService(loader datasetLoader, now func() time.Time) *ContextService {
	if now == nil {
		now = time.Now
	}
	return &ContextService{
		loader: loader,
		now:    now,
	}
}

func (s *ContextService) Summary(ctx context.Context) (*dashboard.SummaryResponse, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dashboard.SummaryResponse{
		Source:       ds.SourceName,
		FetchedAt:    ds.FetchedAt,
		Cached:       ds.Cached,
		Summary:      stats.Summarize(ds.Table, ds.Movements),
		Frequency:    stats.WorkoutFrequency(ds.Table, stats.DefaultFrequencyLimit),
		Distribution: stats.MovementDistribution(ds.Movements, stats.DefaultDistributionLimit),
	}, nil
}

// WorkoutTypes returns one card per workout type, sorted by name.
func (s *ContextService) WorkoutTypes(ctx context.Context) ([]stats.WorkoutTypeCard, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return stats.WorkoutTypeCards(ds.Table, s.now()), nil
}

func (s *ContextService) MovementStats(ctx context.Context, workout string) ([]stats.MovementStat, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := ds.MovementsFor(workout)
	if err != nil {
		return nil, err
	}
	return stats.MovementStats(movements), nil
}

func (s *ContextService) MovementTrend(ctx context.Context, movement string, metric stats.Metric, workout string) (*stats.Trend, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := ds.MovementsFor(workout)
	if err != nil {
		return nil, err
	}
	if len(stats.FilterMovements(movements, movement)) == 0 {
		return nil, fmt.Errorf("%w: %s", dashboard.ErrMovementNotFound, movement)
	}

	trend := stats.MovementTrend(movements, movement, metric)
	return &trend, nil
}

// PersonalRecords covers all movements of the workout when movements is empty.
func (s *ContextService) PersonalRecords(ctx context.Context, workout string, movements []string) ([]stats.PersonalRecord, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	filtered, err := ds.MovementsFor(workout)
	if err != nil {
		return nil, err
	}
	return stats.PersonalRecords(filtered, movements), nil
}

func (s *ContextService) Validate(ctx context.Context) (*dashboard.ValidationResponse, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	columns := []string{}
	if ds.Table != nil {
		columns = ds.Table.Columns
	}

	return &dashboard.ValidationResponse{
		Valid:    ds.Report.Valid(),
		Issues:   ds.Report.Issues,
		Warnings: ds.Warnings,
		Columns:  columns,
		Sessions: ds.Table.Len(),
	}, nil
}
