package dashboard_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/spreadsheet"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       dashboard.ErrorKind
		statusCode int
		message    string
	}{
		{
			name:       "unavailable",
			err:        fmt.Errorf("%w: token expired", spreadsheet.ErrUnavailable),
			kind:       dashboard.ErrorKindConnection,
			statusCode: http.StatusServiceUnavailable,
		},
		{
			name:       "spreadsheet not found",
			err:        fmt.Errorf("%w: 'Your Workout Log'", spreadsheet.ErrSpreadsheetNotFound),
			kind:       dashboard.ErrorKindConfiguration,
			statusCode: http.StatusNotFound,
			message:    "google sheet 'Your Workout Log' not found or not shared with service account",
		},
		{
			name:       "worksheet not found",
			err:        fmt.Errorf("spreadsheet 'x': %w", spreadsheet.ErrWorksheetNotFound),
			kind:       dashboard.ErrorKindConfiguration,
			statusCode: http.StatusNotFound,
		},
		{
			name:       "unknown workout",
			err:        fmt.Errorf("%w: Leg Day", dashboard.ErrWorkoutNotFound),
			kind:       dashboard.ErrorKindNotFound,
			statusCode: http.StatusNotFound,
			message:    "workout not found: Leg Day",
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			kind:       dashboard.ErrorKindInternal,
			statusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := dashboard.ClassifyError(tt.err, "google sheet 'Your Workout Log'")
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, tt.statusCode, pe.StatusCode())
			assert.Equal(t, tt.err.Error(), pe.Details)
			assert.NotEmpty(t, pe.Title)
			if tt.message != "" {
				assert.Equal(t, tt.message, pe.Message)
			}
		})
	}
}
