package infer

import (
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/source"
)

// RegionParams holds the thresholds for data region detection.
type RegionParams struct {
	DensityMin       float64
	MinNonEmptyCells int
}

// DefaultRegionParams returns default region detection thresholds.
func DefaultRegionParams() RegionParams {
	return RegionParams{
		DensityMin:       0.04,
		MinNonEmptyCells: 3,
	}
}

// Region is the bounding box of non-empty cells, in 0-based source row and
// column indexes.
type Region struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
	NonEmpty          int
}

// Density is the share of non-empty cells inside the box.
func (r Region) Density() float64 {
	total := (r.LastRow - r.FirstRow + 1) * (r.LastCol - r.FirstCol + 1)
	return float64(r.NonEmpty) / float64(total)
}

// SuggestedLinesToIgnore is the number of leading rows above the region.
func (r Region) SuggestedLinesToIgnore() int {
	return r.FirstRow
}

func (r Region) String() string {
	return fmt.Sprintf("rows %d-%d, columns %d-%d", r.FirstRow+1, r.LastRow+1, r.FirstCol+1, r.LastCol+1)
}

// DetectRegion scans every row of src. It reports false when the sheet holds too
// few or too sparse values to look like a table.
func DetectRegion(src source.TabularSource, params RegionParams) (Region, bool, error) {
	if err := src.Seek(0); err != nil {
		return Region{}, false, err
	}

	r := Region{FirstRow: -1, LastRow: -1, FirstCol: -1, LastCol: -1}
	for rowIdx := 0; ; rowIdx++ {
		row, err := src.NextRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Region{}, false, fmt.Errorf("read row %d: %w", rowIdx, err)
		}

		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			r.NonEmpty++
			if r.FirstRow < 0 {
				r.FirstRow = rowIdx
			}
			r.LastRow = rowIdx
			if r.FirstCol < 0 || colIdx < r.FirstCol {
				r.FirstCol = colIdx
			}
			if colIdx > r.LastCol {
				r.LastCol = colIdx
			}
		}
	}

	if r.FirstRow < 0 || r.NonEmpty < params.MinNonEmptyCells {
		return r, false, nil
	}
	if r.Density() < params.DensityMin {
		return r, false, nil
	}
	return r, true, nil
}
