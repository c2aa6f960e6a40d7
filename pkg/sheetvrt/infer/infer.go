package infer

import (
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/source"
)

// Request configures one inference pass.
type Request struct {
	// Offset is the first data row (0-based).
	Offset int
	// Header selects names from the header row instead of placeholders.
	Header bool
	// MaxRows caps the scan; 0 reads to the end of the source.
	MaxRows int
}

// Result is the outcome of one inference pass.
type Result struct {
	Columns []models.ColumnDescriptor
	Sample  models.TabularSample
}

// Run scans src from req.Offset, classifies each column and resolves
// destination names.
func Run(src source.TabularSource, req Request) (Result, error) {
	fields := src.FieldNames()

	sample, err := scan(src, req.Offset, req.MaxRows, len(fields))
	if err != nil {
		return Result{}, err
	}

	names, err := headerNames(src, req, fields)
	if err != nil {
		return Result{}, err
	}

	columns := make([]models.ColumnDescriptor, len(fields))
	values := make([]string, len(sample.Rows))
	for col, field := range fields {
		for i, row := range sample.Rows {
			values[i] = row[col]
		}
		columns[col] = models.ColumnDescriptor{
			Name: names[col],
			Src:  field,
			Type: ClassifyColumn(values),
		}
	}

	return Result{Columns: columns, Sample: sample}, nil
}

// scan reads rows from offset to the end (or maxRows) and tracks the
// position of the last row holding a non-blank cell.
func scan(src source.TabularSource, offset, maxRows, width int) (models.TabularSample, error) {
	var sample models.TabularSample

	if err := src.Seek(offset); err != nil {
		return sample, err
	}

	for maxRows <= 0 || len(sample.Rows) < maxRows {
		row, err := src.NextRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sample, fmt.Errorf("read row %d: %w", offset+len(sample.Rows), err)
		}

		values := make([]string, width)
		copy(values, row)
		sample.Rows = append(sample.Rows, values)

		if hasData(values) {
			sample.NonEmptyRowCount = len(sample.Rows)
		}
	}

	return sample, nil
}

// headerNames resolves destination names. With headers on a non-zero
// offset the names come from the row just above the data.
func headerNames(src source.TabularSource, req Request, fields []string) ([]string, error) {
	raw := make([]string, len(fields))

	switch {
	case !req.Header:
	case req.Offset == 0:
		copy(raw, fields)
	default:
		if err := src.Seek(req.Offset - 1); err != nil {
			return nil, err
		}
		row, err := src.NextRow()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header row: %w", err)
		}
		copy(raw, row)
	}

	return UniqueNames(raw), nil
}

// UniqueNames replaces blank and repeated names with positional
// placeholders so every name is unique.
func UniqueNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))

	for i, name := range raw {
		if name == "" || seen[name] {
			name = models.PlaceholderName(i)
		}
		for k := 2; seen[name]; k++ {
			name = fmt.Sprintf("%s_%d", models.PlaceholderName(i), k)
		}
		seen[name] = true
		names[i] = name
	}

	return names
}

func hasData(values []string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}
