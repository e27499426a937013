package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	formattedValue      = "FORMATTED_VALUE"
)

var googleScopes = []string{
	sheets.SpreadsheetsReadonlyScope,
	drive.DriveReadonlyScope,
}

type GoogleSourceParams struct {
	SheetName       string
	Worksheet       string
	CredentialsJSON []byte
	Endpoint        string
	HTTPClient      *http.Client
}

// GoogleSource reads a worksheet of a Google spreadsheet, resolved by name through Drive.
type GoogleSource struct {
	sheetName string
	worksheet string
	drive     *drive.Service
	sheets    *sheets.Service
}

func NewGoogleSource(ctx context.Context, params GoogleSourceParams) (*GoogleSource, error) {
	if params.SheetName == "" {
		params.SheetName = DefaultSheetName
	}

	httpClient := params.HTTPClient
	if httpClient == nil && len(params.CredentialsJSON) > 0 {
		jwtConfig, err := google.JWTConfigFromJSON(params.CredentialsJSON, googleScopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: parse service account credentials: %w", ErrUnavailable, err)
		}
		// token requests and API calls share the traced transport
		tracedCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		})
		httpClient = jwtConfig.Client(tracedCtx)
	}

	var driveOpts, sheetsOpts []option.ClientOption
	if httpClient != nil {
		driveOpts = append(driveOpts, option.WithHTTPClient(httpClient))
		sheetsOpts = append(sheetsOpts, option.WithHTTPClient(httpClient))
	}
	if params.Endpoint != "" {
		endpoint := strings.TrimSuffix(params.Endpoint, "/")
		driveOpts = append(driveOpts, option.WithEndpoint(endpoint+"/drive/v3/"))
		sheetsOpts = append(sheetsOpts, option.WithEndpoint(endpoint+"/"))
	}

	driveService, err := drive.NewService(ctx, driveOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create drive client: %w", err)
	}

	sheetsService, err := sheets.NewService(ctx, sheetsOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return &GoogleSource{
		sheetName: params.SheetName,
		worksheet: params.Worksheet,
		drive:     driveService,
		sheets:    sheetsService,
	}, nil
}

func (s *GoogleSource) Name() string {
	return fmt.Sprintf("google sheet '%s'", s.sheetName)
}

func (s *GoogleSource) Fetch(ctx context.Context) (*Table, error) {
	spreadsheetId, err := s.spreadsheetId(ctx)
	if err != nil {
		return nil, err
	}

	title, warning, err := s.resolveWorksheet(ctx, spreadsheetId)
	if err != nil {
		return nil, err
	}

	values, err := s.readRange(ctx, spreadsheetId, quoteTitle(title))
	if err != nil {
		return nil, err
	}

	table := NewTable(title, values)
	if warning != "" {
		log.Warnln(warning)
		table.Warnings = append(table.Warnings, warning)
	}

	log.Debugf("fetched %d rows from worksheet '%s' of '%s'", table.Len(), title, s.sheetName)

	return table, nil
}

func (s *GoogleSource) Header(ctx context.Context) ([]string, error) {
	spreadsheetId, err := s.spreadsheetId(ctx)
	if err != nil {
		return nil, err
	}

	title, _, err := s.resolveWorksheet(ctx, spreadsheetId)
	if err != nil {
		return nil, err
	}

	values, err := s.readRange(ctx, spreadsheetId, quoteTitle(title)+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []string{}, nil
	}

	return NewTable(title, values[:1]).Columns, nil
}

func (s *GoogleSource) spreadsheetId(ctx context.Context) (string, error) {
	query := fmt.Sprintf(
		"mimeType = '%s' and trashed = false and name = '%s'",
		spreadsheetMimeType, escapeQuery(s.sheetName),
	)
	fileList, err := s.drive.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", mapGoogleError(err, ErrSpreadsheetNotFound)
	}

	if len(fileList.Files) == 0 {
		return "", fmt.Errorf("%w: '%s'", ErrSpreadsheetNotFound, s.sheetName)
	}
	if len(fileList.Files) > 1 {
		log.Warnf("found %d spreadsheets named '%s', will take the first one: %s", len(fileList.Files), s.sheetName, fileList.Files[0].Id)
	}

	return fileList.Files[0].Id, nil
}

func (s *GoogleSource) resolveWorksheet(ctx context.Context, spreadsheetId string) (string, string, error) {
	spreadsheet, err := s.sheets.
		Spreadsheets.Get(spreadsheetId).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", mapGoogleError(err, ErrSpreadsheetNotFound)
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		titles = append(titles, sheet.Properties.Title)
	}

	title, warning, err := selectWorksheet(titles, s.worksheet)
	if err != nil {
		return "", "", fmt.Errorf("spreadsheet '%s': %w", s.sheetName, err)
	}

	return title, warning, nil
}

func (s *GoogleSource) readRange(ctx context.Context, spreadsheetId, a1Range string) ([][]string, error) {
	valueRange, err := s.sheets.
		Spreadsheets.Values.Get(spreadsheetId, a1Range).
		ValueRenderOption(formattedValue).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapGoogleError(err, ErrWorksheetNotFound)
	}

	values := make([][]string, 0, len(valueRange.Values))
	for _, row := range valueRange.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cast.ToString(cell)
		}
		values = append(values, cells)
	}

	return values, nil
}

// mapGoogleError turns an API failure into one of the package errors. Not-found style
// answers (404, and 400 for an unparsable range) map to notFound, everything else
// including transport failures is ErrUnavailable.
func mapGoogleError(err error, notFound error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound, http.StatusBadRequest:
			return fmt.Errorf("%w: %w", notFound, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
