package mcp

import (
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the workout aggregates: summary, workout types,
// movement stats, movement trend, personal records and sheet validation.
// Mounted by the main server at /mcp, see HTTPHandler.
func NewServer(loader datasetLoader, now func() time.Time) *mcp.Server {
	h := NewHandler(NewContextService(loader, now))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitnessdash",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_data_summary",
		Description: "Returns the overall summary of the workout log: total sessions, workout types, unique movements, total volume (weight x reps x sets), date range, workout frequency and the most common movements.",
	}, h.GetDataSummaryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_workout_types",
		Description: "Returns every workout type with its session count, days tracked and days since the last session.",
	}, h.ListWorkoutTypesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_movement_stats",
		Description: "Returns per-movement stats (sessions, entries, mean and max weight, max reps, total volume, last performed). Optional: workout to narrow to one workout type.",
	}, h.GetMovementStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_movement_trend",
		Description: "Returns the dated series of one movement for a metric (weight, reps, sets or volume) with first/last values, change and a least-squares slope per day. Args: movement; optional: metric, workout. Use to answer how a lift progressed.",
	}, h.GetMovementTrendTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Returns the best weight, best reps and best single-entry volume per movement with their dates. Optional: workout, movements (list of names).",
	}, h.GetPersonalRecordsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "validate_sheet",
		Description: "Checks the structure of the workout sheet (workout and date columns, movement slot columns, data rows) and returns the issues found, loader warnings and the detected columns.",
	}, h.ValidateSheetTool())

	return s
}

// HTTPHandler serves the MCP server over streamable HTTP.
func HTTPHandler(s *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s
	}, nil)
}
