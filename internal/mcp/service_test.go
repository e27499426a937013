package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/stats"
)

// mockLoader implements datasetLoader for service tests.
type mockLoader struct {
	ds  *dashboard.Dataset
	err error
}

func (m *mockLoader) Load(ctx context.Context) (*dashboard.Dataset, error) {
	return m.ds, m.err
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func testDataset() *dashboard.Dataset {
	raw := spreadsheet.NewTable("Sheet1", [][]string{
		{"Date", "Workout", "movement_1", "weight_1", "rep_1", "set_1"},
		{"2024-03-01", "Push Day", "Bench Press", "185", "8", "3"},
		{"2024-03-02", "Leg Day", "Squat", "225", "5", "5"},
		{"2024-03-08", "Push Day", "bench press", "190", "8", "3"},
	})
	return dashboard.NewDataset("google sheet 'Test Log'", raw, testNow, false)
}

func newTestService(ds *dashboard.Dataset, err error) *ContextService {
	return NewContextService(&mockLoader{ds: ds, err: err}, func() time.Time { return testNow })
}

func TestContextService_Summary(t *testing.T) {
	t.Run("summarizes", func(t *testing.T) {
		got, err := newTestService(testDataset(), nil).Summary(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Summary.TotalSessions != 3 {
			t.Fatalf("total sessions = %d, want 3", got.Summary.TotalSessions)
		}
		if got.Summary.UniqueMovements != 2 {
			t.Fatalf("unique movements = %d, want 2", got.Summary.UniqueMovements)
		}
		// 185*8*3 + 225*5*5 + 190*8*3
		if got.Summary.TotalVolume != 14145 {
			t.Fatalf("total volume = %v, want 14145", got.Summary.TotalVolume)
		}
		if got.Source != "google sheet 'Test Log'" {
			t.Fatalf("source = %q", got.Source)
		}
	})

	t.Run("load_error", func(t *testing.T) {
		_, err := newTestService(nil, spreadsheet.ErrUnavailable).Summary(context.Background())
		if !errors.Is(err, spreadsheet.ErrUnavailable) {
			t.Fatalf("err = %v, want ErrUnavailable", err)
		}
	})
}

func TestContextService_WorkoutTypes(t *testing.T) {
	cards, err := newTestService(testDataset(), nil).WorkoutTypes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[1].Workout != "Push Day" || cards[1].Sessions != 2 {
		t.Fatalf("unexpected card: %+v", cards[1])
	}
	if cards[1].DaysSinceLast == nil || *cards[1].DaysSinceLast != 2 {
		t.Fatalf("days since last = %v, want 2", cards[1].DaysSinceLast)
	}
}

func TestContextService_MovementStats(t *testing.T) {
	svc := newTestService(testDataset(), nil)

	t.Run("all_workouts", func(t *testing.T) {
		list, err := svc.MovementStats(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 movements, got %d", len(list))
		}
	})

	t.Run("one_workout", func(t *testing.T) {
		list, err := svc.MovementStats(context.Background(), "Push Day")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].Sessions != 2 {
			t.Fatalf("unexpected stats: %+v", list)
		}
	})

	t.Run("unknown_workout", func(t *testing.T) {
		_, err := svc.MovementStats(context.Background(), "Arms Day")
		if !errors.Is(err, dashboard.ErrWorkoutNotFound) {
			t.Fatalf("err = %v, want ErrWorkoutNotFound", err)
		}
	})
}

func TestContextService_MovementTrend(t *testing.T) {
	svc := newTestService(testDataset(), nil)

	t.Run("weight", func(t *testing.T) {
		trend, err := svc.MovementTrend(context.Background(), "BENCH PRESS", stats.MetricWeight, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(trend.Points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(trend.Points))
		}
		if trend.First != 185 || trend.Last != 190 || trend.Delta != 5 {
			t.Fatalf("unexpected trend: first=%v last=%v delta=%v", trend.First, trend.Last, trend.Delta)
		}
	})

	t.Run("movement_not_in_workout", func(t *testing.T) {
		_, err := svc.MovementTrend(context.Background(), "Squat", stats.MetricWeight, "Push Day")
		if !errors.Is(err, dashboard.ErrMovementNotFound) {
			t.Fatalf("err = %v, want ErrMovementNotFound", err)
		}
	})
}

func TestContextService_PersonalRecords(t *testing.T) {
	records, err := newTestService(testDataset(), nil).PersonalRecords(context.Background(), "Push Day", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].MaxWeight == nil || records[0].MaxWeight.Value != 190 {
		t.Fatalf("max weight = %+v, want 190", records[0].MaxWeight)
	}
	if records[0].BestVolume == nil || records[0].BestVolume.Value != 4560 {
		t.Fatalf("best volume = %+v, want 4560", records[0].BestVolume)
	}
}

func TestContextService_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		report, err := newTestService(testDataset(), nil).Validate(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.Valid || report.Sessions != 3 {
			t.Fatalf("unexpected report: %+v", report)
		}
	})

	t.Run("no_movement_columns", func(t *testing.T) {
		raw := spreadsheet.NewTable("Sheet1", [][]string{
			{"Date", "Workout"},
			{"2024-03-01", "Push Day"},
		})
		ds := dashboard.NewDataset("test", raw, testNow, false)
		report, err := newTestService(ds, nil).Validate(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Valid {
			t.Fatalf("expected an invalid report")
		}
		if len(report.Issues) != 1 {
			t.Fatalf("issues = %v", report.Issues)
		}
	})
}
