package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// FileSource reads a local .xlsx workbook with the same worksheet rules as GoogleSource.
type FileSource struct {
	path      string
	worksheet string
}

func NewFileSource(path, worksheet string) *FileSource {
	return &FileSource{
		path:      path,
		worksheet: worksheet,
	}
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("workbook '%s'", s.path)
}

func (s *FileSource) Fetch(ctx context.Context) (*Table, error) {
	rows, title, warning, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	table := NewTable(title, rows)
	if warning != "" {
		log.Warnln(warning)
		table.Warnings = append(table.Warnings, warning)
	}

	return table, nil
}

func (s *FileSource) Header(ctx context.Context) ([]string, error) {
	rows, title, _, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return NewTable(title, rows[:1]).Columns, nil
}

func (s *FileSource) read(ctx context.Context) ([][]string, string, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", "", fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, s.path)
		}
		return nil, "", "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: open workbook: %w", ErrUnavailable, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("close workbook %s: %s", s.path, err)
		}
	}()

	title, warning, err := selectWorksheet(file.GetSheetList(), s.worksheet)
	if err != nil {
		return nil, "", "", fmt.Errorf("workbook '%s': %w", s.path, err)
	}

	rows, err := file.GetRows(title)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: read worksheet '%s': %w", ErrWorksheetNotFound, title, err)
	}

	return rows, title, warning, nil
}
