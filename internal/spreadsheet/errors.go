package spreadsheet

import "errors"

var (
	// ErrUnavailable covers authorization failures and an unreachable backend.
	ErrUnavailable         = errors.New("spreadsheet backend unavailable")
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrWorksheetNotFound   = errors.New("worksheet not found")
)
