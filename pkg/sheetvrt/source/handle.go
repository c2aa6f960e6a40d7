package source

// Handle owns at most one open Workbook. Opening through a Handle always
// releases the previous workbook first.
type Handle struct {
	// Opener replaces Open when set.
	Opener func(path, driver string, nativeHeaders bool) (Workbook, error)

	wb   Workbook
	path string
}

// Open closes the current workbook, if any, then opens path.
func (h *Handle) Open(path, driver string, nativeHeaders bool) (Workbook, error) {
	if err := h.Close(); err != nil {
		return nil, err
	}
	open := h.Opener
	if open == nil {
		open = Open
	}
	wb, err := open(path, driver, nativeHeaders)
	if err != nil {
		return nil, err
	}
	h.wb, h.path = wb, path
	return wb, nil
}

// Workbook returns the open workbook or nil.
func (h *Handle) Workbook() Workbook { return h.wb }

// Path returns the path of the open workbook.
func (h *Handle) Path() string { return h.path }

// Close releases the current workbook. It is safe to call repeatedly.
func (h *Handle) Close() error {
	if h.wb == nil {
		return nil
	}
	err := h.wb.Close()
	h.wb, h.path = nil, ""
	return err
}
