package testing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves rows as the only worksheet of a new .xlsx file in a temp dir and returns its path.
func WriteWorkbook(t *testing.T, worksheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", worksheet))
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(worksheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "workouts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
