package dashboard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/fitnessdash/internal/spreadsheet"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrMovementNotFound = errors.New("movement not found")
)

type ErrorKind string

const (
	// ErrorKindConnection blocks the page: the sheet could not be reached or authorized.
	ErrorKindConnection ErrorKind = "connection"
	// ErrorKindConfiguration means the configured spreadsheet or worksheet does not exist.
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindNotFound      ErrorKind = "not_found"
	ErrorKindInternal      ErrorKind = "internal"
)

// PageError is what a page shows instead of its content.
type PageError struct {
	Kind    ErrorKind
	Title   string
	Message string
	Hint    string
	// Details is the technical error, shown only when enabled in the config.
	Details string
}

func ClassifyError(err error, sourceName string) PageError {
	pe := PageError{Details: err.Error()}
	switch {
	case errors.Is(err, spreadsheet.ErrSpreadsheetNotFound):
		pe.Kind = ErrorKindConfiguration
		pe.Title = "Spreadsheet not found"
		pe.Message = fmt.Sprintf("%s not found or not shared with service account", sourceName)
		pe.Hint = "Check the sheet_name setting (or GOOGLE_SHEET_NAME) and share the sheet with the service account email."
	case errors.Is(err, spreadsheet.ErrWorksheetNotFound):
		pe.Kind = ErrorKindConfiguration
		pe.Title = "Worksheet not found"
		pe.Message = fmt.Sprintf("Error accessing %s: the worksheet could not be read", sourceName)
		pe.Hint = "Check the worksheet setting (or GOOGLE_SHEET_WORKSHEET)."
	case errors.Is(err, spreadsheet.ErrUnavailable):
		pe.Kind = ErrorKindConnection
		pe.Title = "Could not load workout data"
		pe.Message = "Google Sheets could not be reached or the service account was rejected."
		pe.Hint = "Make sure your Google Sheets is shared with the service account email, then use Test connection."
	case errors.Is(err, ErrWorkoutNotFound), errors.Is(err, ErrMovementNotFound):
		pe.Kind = ErrorKindNotFound
		pe.Title = "Not found"
		pe.Message = err.Error()
	default:
		pe.Kind = ErrorKindInternal
		pe.Title = "Something went wrong"
		pe.Message = "The page could not be rendered."
	}
	return pe
}

// StatusCode maps the error kind to the JSON API status.
func (pe PageError) StatusCode() int {
	switch pe.Kind {
	case ErrorKindConnection:
		return http.StatusServiceUnavailable
	case ErrorKindConfiguration, ErrorKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
