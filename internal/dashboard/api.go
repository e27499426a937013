package dashboard

import (
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitnessdash/internal/stats"
	"github.com/2beens/fitnessdash/internal/telemetry/tracing"
	"github.com/2beens/fitnessdash/pkg"

	log "github.com/sirupsen/logrus"
)

type SummaryResponse struct {
	Source       string            `json:"source"`
	FetchedAt    time.Time         `json:"fetched_at"`
	Cached       bool              `json:"cached"`
	Summary      stats.DataSummary `json:"summary"`
	Frequency    []stats.CountItem `json:"frequency"`
	Distribution []stats.CountItem `json:"distribution"`
}

type WorkoutsResponse struct {
	Workouts []stats.WorkoutTypeCard `json:"workouts"`
	Total    int                     `json:"total"`
}

type MovementsResponse struct {
	Workout   string               `json:"workout"`
	Movements []stats.MovementStat `json:"movements"`
}

type RecordsResponse struct {
	Workout string                 `json:"workout"`
	Records []stats.PersonalRecord `json:"records"`
}

type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
	Columns  []string `json:"columns"`
	Sessions int      `json:"sessions"`
}

type RefreshResponse struct {
	Refreshed bool `json:"refreshed"`
}

// loadForAPI answers with the classified error and returns nil when the dataset could not be loaded.
func (handler *Handler) loadForAPI(w http.ResponseWriter, r *http.Request) *Dataset {
	ds, err := handler.loader.Load(r.Context())
	if err != nil {
		log.Errorf("api %s, load dataset: %s", r.URL.Path, err)
		handler.writeAPIError(w, err)
		return nil
	}
	return ds
}

func (handler *Handler) writeAPIError(w http.ResponseWriter, err error) {
	pe := ClassifyError(err, handler.loader.SourceName())
	details := ""
	if handler.showErrorDetails {
		details = pe.Details
	}
	pkg.WriteJSONError(w, pe.Message, details, pe.StatusCode())
}

func (handler *Handler) HandleAPISummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.summary")
	defer span.End()

	ds := handler.loadForAPI(w, r.WithContext(ctx))
	if ds == nil {
		return
	}

	pkg.WriteJSON(w, SummaryResponse{
		Source:       ds.SourceName,
		FetchedAt:    ds.FetchedAt,
		Cached:       ds.Cached,
		Summary:      stats.Summarize(ds.Table, ds.Movements),
		Frequency:    stats.WorkoutFrequency(ds.Table, stats.DefaultFrequencyLimit),
		Distribution: stats.MovementDistribution(ds.Movements, stats.DefaultDistributionLimit),
	}, http.StatusOK)
}

func (handler *Handler) HandleAPIWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.workouts")
	defer span.End()

	ds := handler.loadForAPI(w, r.WithContext(ctx))
	if ds == nil {
		return
	}

	cards := stats.WorkoutTypeCards(ds.Table, handler.now())
	pkg.WriteJSON(w, WorkoutsResponse{
		Workouts: cards,
		Total:    len(cards),
	}, http.StatusOK)
}

func (handler *Handler) HandleAPIWorkoutMovements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.workoutMovements")
	defer span.End()

	ds := handler.loadForAPI(w, r.WithContext(ctx))
	if ds == nil {
		return
	}

	workout := pathVar(r, "name")
	movements, err := ds.MovementsFor(workout)
	if err != nil {
		handler.writeAPIError(w, err)
		return
	}

	pkg.WriteJSON(w, MovementsResponse{
		Workout:   workout,
		Movements: stats.MovementStats(movements),
	}, http.StatusOK)
}

func (handler *Handler) HandleAPIMovementTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.movementTrend")
	defer span.End()

	ds := handler.loadForAPI(w, r.WithContext(ctx))
	if ds == nil {
		return
	}

	movement := pathVar(r, "name")
	metric := stats.ParseMetric(r.URL.Query().Get(queryParamMetric))

	movements, err := ds.MovementsFor(r.URL.Query().Get(queryParamWorkoutFilter))
	if err != nil {
		handler.writeAPIError(w, err)
		return
	}
	if !ds.IsEmpty() && len(stats.FilterMovements(movements, movement)) == 0 {
		handler.writeAPIError(w, fmt.Errorf("%w: %s", ErrMovementNotFound, movement))
		return
	}

	pkg.WriteJSON(w, stats.MovementTrend(movements, movement, metric), http.StatusOK)
}

func (handler *Handler) HandleAPIWorkoutRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.workoutRecords")
	defer span.End()

	ds := handler.loadForAPI(w, r.WithContext(ctx))
	if ds == nil {
		return
	}

	workout := pathVar(r, "name")
	movements, err := ds.MovementsFor(workout)
	if err != nil {
		handler.writeAPIError(w, err)
		return
	}

	pkg.WriteJSON(w, RecordsResponse{
		Workout: workout,
		Records: stats.PersonalRecords(movements, r.URL.Query()[queryParamMovements]),
	}, http.StatusOK)
}

func (handler *Handler) HandleAPIValidation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.validation")
	defer span.End()

	ds := handler.loadForAPI(w, r.WithContext(ctx))
	if ds == nil {
		return
	}

	columns := []string{}
	if ds.Table != nil {
		columns = ds.Table.Columns
	}

	pkg.WriteJSON(w, ValidationResponse{
		Valid:    ds.Report.Valid(),
		Issues:   ds.Report.Issues,
		Warnings: ds.Warnings,
		Columns:  columns,
		Sessions: ds.Table.Len(),
	}, http.StatusOK)
}

func (handler *Handler) HandleAPIRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.refresh")
	defer span.End()

	if err := handler.loader.Refresh(ctx); err != nil {
		log.Errorf("api refresh: %s", err)
		pkg.WriteJSONError(w, "failed to clear the cache", "", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, RefreshResponse{Refreshed: true}, http.StatusOK)
}

func (handler *Handler) HandleAPIConnection(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.api.connection")
	defer span.End()

	status := handler.loader.TestConnection(ctx)
	code := http.StatusOK
	if !status.OK {
		code = http.StatusServiceUnavailable
	}

	pkg.WriteJSON(w, status, code)
}
