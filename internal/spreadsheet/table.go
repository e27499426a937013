package spreadsheet

import (
	"strings"
)

// Table is a fetched worksheet: a fixed header row and the rows under it.
// Every row has exactly one cell per column.
type Table struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Worksheet string     `json:"worksheet"`
	Warnings  []string   `json:"warnings,omitempty"`
}

// NewTable builds a table from raw sheet values, the first row being the header.
// Short rows are padded, cells beyond the header are dropped.
func NewTable(worksheet string, values [][]string) *Table {
	t := &Table{
		Columns:   []string{},
		Rows:      [][]string{},
		Worksheet: worksheet,
	}
	if len(values) == 0 {
		return t
	}

	header := values[0]
	// trailing unnamed columns carry no records
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}
	for _, col := range header {
		t.Columns = append(t.Columns, strings.TrimSpace(col))
	}

	for _, raw := range values[1:] {
		row := make([]string, len(t.Columns))
		copy(row, raw)
		t.Rows = append(t.Rows, row)
	}

	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Record returns row i as a column name to cell mapping.
func (t *Table) Record(i int) map[string]string {
	record := make(map[string]string, len(t.Columns))
	for c, col := range t.Columns {
		record[col] = t.Rows[i][c]
	}
	return record
}

// Preview returns at most n leading rows.
func (t *Table) Preview(n int) [][]string {
	if t == nil {
		return [][]string{}
	}
	if t.Len() <= n {
		return t.Rows
	}
	return t.Rows[:n]
}
