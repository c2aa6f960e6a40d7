// Package source opens spreadsheet-like files and exposes their sheets as
// sequential row sources.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoReader indicates a known driver without a reader in this build.
var ErrNoReader = errors.New("no reader for driver")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// TabularSource is one opened sheet or table.
type TabularSource interface {
	// DriverID identifies the driver, e.g. "XLSX".
	DriverID() string
	// FieldNames returns the driver-reported field names.
	FieldNames() []string
	// FeatureCount returns the driver-reported number of data rows.
	FeatureCount() int
	// Seek positions the cursor before the row at index (0-based).
	Seek(row int) error
	// NextRow returns the next row as strings aligned to FieldNames, or
	// io.EOF after the last row.
	NextRow() ([]string, error)
}

// Workbook is an opened file holding one or more sheets.
type Workbook interface {
	// Driver identifies the driver that opened the file.
	Driver() string
	// Sheets lists sheet names in file order.
	Sheets() []string
	// Sheet opens the named sheet.
	Sheet(name string) (TabularSource, error)
	// Close releases the file.
	Close() error
}

var driverByExt = map[string]string{
	".xlsx": "XLSX",
	".xlsm": "XLSX",
	".xltx": "XLSX",
	".xltm": "XLSX",
	".xls":  "XLS",
	".ods":  "ODS",
	".csv":  "CSV",
}

// DriverForPath guesses the driver from the file extension. It returns ""
// for unknown extensions.
func DriverForPath(path string) string {
	return driverByExt[strings.ToLower(filepath.Ext(path))]
}

// Open opens path with the given driver. nativeHeaders tells the reader to
// take field names from the first row.
func Open(path, driver string, nativeHeaders bool) (Workbook, error) {
	var (
		wb  Workbook
		err error
	)
	switch driver {
	case "XLSX":
		wb, err = openXLSX(path, nativeHeaders)
	case "CSV":
		wb, err = openCSV(path, nativeHeaders)
	default:
		return nil, fmt.Errorf("%w %s: %s", ErrNoReader, driver, filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	return wb, nil
}
