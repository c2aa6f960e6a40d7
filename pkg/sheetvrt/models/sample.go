package models

// TabularSample holds the raw string rows read during one inference pass.
type TabularSample struct {
	// Rows are aligned to source column order.
	Rows [][]string
	// NonEmptyRowCount is the number of rows from the scan start up to and
	// including the last row with a non-blank cell.
	NonEmptyRowCount int
}
