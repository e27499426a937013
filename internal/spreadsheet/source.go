package spreadsheet

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	DefaultSheetName = "Your Workout Log"
	DefaultWorksheet = "Sheet1"
)

type Source interface {
	// Fetch reads the whole worksheet. The first row is the header.
	Fetch(ctx context.Context) (*Table, error)
	// Header reads only the header row.
	Header(ctx context.Context) ([]string, error)
	// Name describes the source for logs and the UI.
	Name() string
}

type SourceParams struct {
	SheetName string
	Worksheet string
	// SourceFile switches to a local .xlsx workbook instead of Google Sheets.
	SourceFile      string
	CredentialsJSON []byte
	// Endpoint and HTTPClient override the Google API host and transport.
	Endpoint   string
	HTTPClient *http.Client
}

// Open returns a FileSource when a source file is configured, otherwise a GoogleSource.
func Open(ctx context.Context, params SourceParams) (Source, error) {
	if params.SourceFile != "" {
		return NewFileSource(params.SourceFile, params.Worksheet), nil
	}

	src, err := NewGoogleSource(ctx, GoogleSourceParams{
		SheetName:       params.SheetName,
		Worksheet:       params.Worksheet,
		CredentialsJSON: params.CredentialsJSON,
		Endpoint:        params.Endpoint,
		HTTPClient:      params.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create google source: %w", err)
	}

	return src, nil
}

// selectWorksheet resolves the configured worksheet title against the available ones.
// An empty name or "Sheet1" means the first worksheet; an unknown title falls back to
// the first worksheet with a warning.
func selectWorksheet(titles []string, wanted string) (string, string, error) {
	if len(titles) == 0 {
		return "", "", ErrWorksheetNotFound
	}

	wanted = strings.TrimSpace(wanted)
	if wanted == "" || wanted == DefaultWorksheet {
		return titles[0], "", nil
	}

	for _, title := range titles {
		if title == wanted {
			return title, "", nil
		}
	}

	return titles[0], fmt.Sprintf("Worksheet '%s' not found, using first sheet '%s'", wanted, titles[0]), nil
}
