package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type csvWorkbook struct {
	name  string
	table *Table
}

// openCSV reads the whole file. The layer is named after the file base name.
func openCSV(path string, nativeHeaders bool) (*csvWorkbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	base := filepath.Base(path)
	return &csvWorkbook{
		name:  strings.TrimSuffix(base, filepath.Ext(base)),
		table: newTableFromGrid("CSV", grid, nativeHeaders),
	}, nil
}

func (w *csvWorkbook) Driver() string { return "CSV" }

func (w *csvWorkbook) Sheets() []string { return []string{w.name} }

func (w *csvWorkbook) Sheet(name string) (TabularSource, error) {
	if name != w.name {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	// Each caller gets its own cursor.
	t := *w.table
	t.pos = 0
	return &t, nil
}

func (w *csvWorkbook) Close() error { return nil }
