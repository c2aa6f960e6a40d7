package source

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

type xlsxWorkbook struct {
	f             *excelize.File
	nativeHeaders bool
}

func openXLSX(path string, nativeHeaders bool) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f, nativeHeaders: nativeHeaders}, nil
}

func (w *xlsxWorkbook) Driver() string { return "XLSX" }

func (w *xlsxWorkbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Sheet loads all rows of the sheet. Raw cell values are used so number
// formats do not hide numeric content from type inference.
func (w *xlsxWorkbook) Sheet(name string) (TabularSource, error) {
	if !slices.Contains(w.f.GetSheetList(), name) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}

	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	return newTableFromGrid(w.Driver(), rows, w.nativeHeaders), nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}
