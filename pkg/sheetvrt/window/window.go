package window

import "fmt"

// Resolver computes the row window for one sheet.
type Resolver struct {
	// LinesToIgnore is the number of leading rows the user skips.
	LinesToIgnore int
	// Header is true when the user wants a header row.
	Header bool
	// NativeHeaders is true when the driver already consumed the header row.
	NativeHeaders bool
	// UnreliableCount selects the manual row count for Limit.
	UnreliableCount bool
}

// headerAdjust is 1 when the header row must be skipped manually.
func (r Resolver) headerAdjust() int {
	if r.Header && !r.NativeHeaders {
		return 1
	}
	return 0
}

// HeaderRowSkipped reports whether Offset includes a header row that the
// driver did not consume.
func (r Resolver) HeaderRowSkipped() bool {
	return r.headerAdjust() == 1
}

// Offset returns the number of source rows skipped before data begins.
func (r Resolver) Offset() int {
	return r.LinesToIgnore + r.headerAdjust()
}

// Limit returns the number of data rows past Offset. nonEmptyRows comes from
// the last inference pass and is used when the driver count is unreliable.
func (r Resolver) Limit(featureCount, nonEmptyRows int) int {
	if r.UnreliableCount {
		return nonEmptyRows
	}
	return max(featureCount-r.Offset(), 0)
}

// SetOffset is the inverse of Offset: it stores the lines to ignore that
// produce the absolute offset value. Negative results clamp to zero.
func (r *Resolver) SetOffset(offset int) {
	r.LinesToIgnore = max(offset-r.headerAdjust(), 0)
}

// GeometryAllowed reports whether point geometry can be combined with the
// selection. Some library versions fail on SQL selections mixed with
// point-from-columns, so geometry needs offset 0 unless compat is set.
func GeometryAllowed(offset int, compat bool) bool {
	return compat || offset == 0
}

func (r Resolver) String() string {
	return fmt.Sprintf("window{ignore=%d header=%t native=%t offset=%d}",
		r.LinesToIgnore, r.Header, r.NativeHeaders, r.Offset())
}
