package spreadsheet

import (
	"context"
	"errors"
	"fmt"
)

type ConnectionStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Columns int    `json:"columns"`
}

// TestConnection reads only the header row of the source.
func TestConnection(ctx context.Context, src Source) ConnectionStatus {
	header, err := src.Header(ctx)
	switch {
	case errors.Is(err, ErrSpreadsheetNotFound):
		return ConnectionStatus{Message: fmt.Sprintf("%s not found or not shared with service account", src.Name())}
	case errors.Is(err, ErrWorksheetNotFound):
		return ConnectionStatus{Message: fmt.Sprintf("Error accessing %s: %s", src.Name(), err)}
	case err != nil:
		return ConnectionStatus{Message: fmt.Sprintf("Connection test failed: %s", err)}
	}

	if len(header) == 0 {
		return ConnectionStatus{Message: fmt.Sprintf("%s appears to be empty", src.Name())}
	}

	return ConnectionStatus{
		OK:      true,
		Message: fmt.Sprintf("Successfully connected to %s with %d columns", src.Name(), len(header)),
		Columns: len(header),
	}
}
