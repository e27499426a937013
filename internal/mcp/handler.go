package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/2beens/fitnessdash/internal/stats"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests: parses input, calls the service, formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetDataSummaryTool returns the MCP tool handler for get_data_summary.
func (h *Handler) GetDataSummaryTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		summary, err := h.service.Summary(ctx)
		if err != nil {
			return errorResult("Error loading workout data: " + err.Error()), nil, nil
		}
		return jsonResult(summary), nil, nil
	}
}

// ListWorkoutTypesTool returns the MCP tool handler for list_workout_types.
func (h *Handler) ListWorkoutTypesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		cards, err := h.service.WorkoutTypes(ctx)
		if err != nil {
			return errorResult("Error loading workout types: " + err.Error()), nil, nil
		}
		return jsonResult(cards), nil, nil
	}
}

// MovementStatsInput is the input for get_movement_stats.
type MovementStatsInput struct {
	Workout string `json:"workout,omitempty" jsonschema:"Workout type to narrow to (e.g. Push Day), all workouts when empty"`
}

// GetMovementStatsTool returns the MCP tool handler for get_movement_stats.
func (h *Handler) GetMovementStatsTool() func(context.Context, *mcp.CallToolRequest, MovementStatsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MovementStatsInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.MovementStats(ctx, strings.TrimSpace(in.Workout))
		if err != nil {
			return errorResult("Error computing movement stats: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// MovementTrendInput is the input for get_movement_trend.
type MovementTrendInput struct {
	Movement string `json:"movement" jsonschema:"Movement name (e.g. Bench Press), matched case-insensitively"`
	Metric   string `json:"metric,omitempty" jsonschema:"One of weight, reps, sets, volume; defaults to weight"`
	Workout  string `json:"workout,omitempty" jsonschema:"Workout type to narrow to, all workouts when empty"`
}

// GetMovementTrendTool returns the MCP tool handler for get_movement_trend.
func (h *Handler) GetMovementTrendTool() func(context.Context, *mcp.CallToolRequest, MovementTrendInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MovementTrendInput) (*mcp.CallToolResult, any, error) {
		movement := strings.TrimSpace(in.Movement)
		if movement == "" {
			return errorResult("Missing movement"), nil, nil
		}

		trend, err := h.service.MovementTrend(ctx, movement, stats.ParseMetric(in.Metric), strings.TrimSpace(in.Workout))
		if err != nil {
			return errorResult("Error computing movement trend: " + err.Error()), nil, nil
		}
		return jsonResult(trend), nil, nil
	}
}

// PersonalRecordsInput is the input for get_personal_records.
type PersonalRecordsInput struct {
	Workout   string   `json:"workout,omitempty" jsonschema:"Workout type to narrow to, all workouts when empty"`
	Movements []string `json:"movements,omitempty" jsonschema:"Movement names to include, every movement when empty"`
}

// GetPersonalRecordsTool returns the MCP tool handler for get_personal_records.
func (h *Handler) GetPersonalRecordsTool() func(context.Context, *mcp.CallToolRequest, PersonalRecordsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PersonalRecordsInput) (*mcp.CallToolResult, any, error) {
		records, err := h.service.PersonalRecords(ctx, strings.TrimSpace(in.Workout), in.Movements)
		if err != nil {
			return errorResult("Error computing personal records: " + err.Error()), nil, nil
		}
		return jsonResult(records), nil, nil
	}
}

// ValidateSheetTool returns the MCP tool handler for validate_sheet.
func (h *Handler) ValidateSheetTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		report, err := h.service.Validate(ctx)
		if err != nil {
			return errorResult("Error loading workout data: " + err.Error()), nil, nil
		}
		return jsonResult(report), nil, nil
	}
}
