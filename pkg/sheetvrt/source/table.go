package source

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
)

// Table is an in-memory TabularSource. Readers load a sheet into a Table;
// tests build one directly with NewTable.
type Table struct {
	driver string
	fields []string
	rows   [][]string
	pos    int
}

// NewTable builds a Table from fields and rows. Rows are padded or cut to
// the field count.
func NewTable(driver string, fields []string, rows [][]string) *Table {
	width := len(fields)
	norm := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, width)
		copy(r, row)
		norm[i] = r
	}
	return &Table{driver: driver, fields: fields, rows: norm}
}

// newTableFromGrid splits a raw grid into field names and data rows.
func newTableFromGrid(driver string, grid [][]string, nativeHeaders bool) *Table {
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}

	var fields []string
	if nativeHeaders && len(grid) > 0 {
		fields = make([]string, width)
		for i := range fields {
			if i < len(grid[0]) && grid[0][i] != "" {
				fields[i] = grid[0][i]
			} else {
				fields[i] = models.PlaceholderName(i)
			}
		}
		grid = grid[1:]
	} else {
		fields = make([]string, width)
		for i := range fields {
			fields[i] = models.PlaceholderName(i)
		}
	}

	return NewTable(driver, fields, grid)
}

// DriverID implements TabularSource.
func (t *Table) DriverID() string { return t.driver }

// FieldNames implements TabularSource.
func (t *Table) FieldNames() []string { return t.fields }

// FeatureCount implements TabularSource.
func (t *Table) FeatureCount() int { return len(t.rows) }

// Seek implements TabularSource.
func (t *Table) Seek(row int) error {
	if row < 0 {
		return fmt.Errorf("seek: negative row %d", row)
	}
	t.pos = row
	return nil
}

// NextRow implements TabularSource.
func (t *Table) NextRow() ([]string, error) {
	if t.pos >= len(t.rows) {
		return nil, io.EOF
	}
	row := t.rows[t.pos]
	t.pos++
	return row, nil
}
