package dashboard

import (
	"net/http"

	"github.com/2beens/fitnessdash/internal/middleware"
	"github.com/2beens/fitnessdash/internal/telemetry/metrics"

	"github.com/gorilla/mux"
)

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	refreshAllowedPerMin int,
) {
	// names in the path are matched escaped and decoded by the handlers, "Push/Pull" included
	mainRouter.UseEncodedPath()

	// refresh refetches the whole sheet, so both forms of it share one rate limit
	refreshLimit := middleware.RateLimit(rateLimiter, metricsManager, "refresh", refreshAllowedPerMin)

	mainRouter.HandleFunc("/", handler.HandleHome).Methods("GET").Name("home")
	mainRouter.HandleFunc("/summary", handler.HandleSummary).Methods("GET").Name("summary")
	mainRouter.HandleFunc("/workouts", handler.HandleWorkoutTypes).Methods("GET").Name("workout-types")
	mainRouter.HandleFunc("/workouts/{name}", handler.HandleWorkout).Methods("GET").Name("workout")
	mainRouter.HandleFunc("/progress", handler.HandleProgress).Methods("GET").Name("progress")
	mainRouter.HandleFunc("/connection", handler.HandleTestConnection).Methods("POST").Name("test-connection")
	mainRouter.Handle("/refresh", refreshLimit(http.HandlerFunc(handler.HandleRefresh))).Methods("POST").Name("refresh")

	apiRouter := mainRouter.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/summary", handler.HandleAPISummary).Methods("GET", "OPTIONS").Name("api-summary")
	apiRouter.HandleFunc("/workouts", handler.HandleAPIWorkouts).Methods("GET", "OPTIONS").Name("api-workouts")
	apiRouter.HandleFunc("/workouts/{name}/movements", handler.HandleAPIWorkoutMovements).Methods("GET", "OPTIONS").Name("api-workout-movements")
	apiRouter.HandleFunc("/workouts/{name}/records", handler.HandleAPIWorkoutRecords).Methods("GET", "OPTIONS").Name("api-workout-records")
	apiRouter.HandleFunc("/movements/{name}/trend", handler.HandleAPIMovementTrend).Methods("GET", "OPTIONS").Name("api-movement-trend")
	apiRouter.HandleFunc("/validation", handler.HandleAPIValidation).Methods("GET", "OPTIONS").Name("api-validation")
	apiRouter.HandleFunc("/connection", handler.HandleAPIConnection).Methods("GET", "OPTIONS").Name("api-connection")
	apiRouter.Handle("/refresh", refreshLimit(http.HandlerFunc(handler.HandleAPIRefresh))).Methods("POST", "OPTIONS").Name("api-refresh")
}
