package sheetvrt

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/infer"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/source"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/vrt"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/window"
)

// Session holds the open workbook and the user's current inputs. It is the
// state behind an interactive editor: open a file, adjust the context,
// preview, then write.
type Session struct {
	builder *Builder
	handle  source.Handle

	ctx          BuilderContext
	headerLocked bool
	last         *Result
}

// NewSession creates a session around b.
func NewSession(b *Builder) *Session {
	return &Session{builder: b}
}

// SetOpener replaces the function used to open workbooks.
func (s *Session) SetOpener(open func(path, driver string, nativeHeaders bool) (source.Workbook, error)) {
	s.handle.Opener = open
}

// Open closes any open workbook, opens path, selects its first sheet and
// reloads an existing descriptor next to it. A descriptor that cannot be
// read is reported and the defaults are kept.
func (s *Session) Open(path string) error {
	driver := source.DriverForPath(path)
	if driver == "" {
		return &window.UnsupportedDriverError{Driver: strings.TrimPrefix(filepath.Ext(path), ".")}
	}

	native, err := s.builder.opts.Policies.Headers(driver)
	if err != nil {
		return err
	}

	wb, err := s.handle.Open(path, driver, native)
	if err != nil {
		s.notify(SeverityWarning, fmt.Sprintf("Could not open %s", path))
		return NewIOError("open", path, err)
	}

	base := filepath.Base(path)
	s.ctx = BuilderContext{
		SourcePath: path,
		LayerName:  strings.TrimSuffix(base, filepath.Ext(base)),
		Header:     native,
	}
	s.headerLocked = native
	s.last = nil

	if sheets := wb.Sheets(); len(sheets) > 0 {
		s.ctx.Sheet = sheets[0]
	}

	if err := s.LoadDescriptor(FinalPath(path)); err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			s.notify(SeverityWarning, fmt.Sprintf("Impossible to open VRT file %s", ioErr.Path))
		} else {
			s.notify(SeverityWarning, "An error occurred while loading the existing VRT file")
		}
		s.builder.opts.Logger.Debug("descriptor reload failed", "path", FinalPath(path), "err", err)
	}

	return nil
}

// Close releases the open workbook.
func (s *Session) Close() error {
	s.last = nil
	return s.handle.Close()
}

// Sheets lists the sheets of the open workbook.
func (s *Session) Sheets() []string {
	if wb := s.handle.Workbook(); wb != nil {
		return wb.Sheets()
	}
	return nil
}

// Driver returns the driver of the open workbook.
func (s *Session) Driver() string {
	if wb := s.handle.Workbook(); wb != nil {
		return wb.Driver()
	}
	return ""
}

// HeaderLocked reports whether the driver reads headers natively, in which
// case Header stays true.
func (s *Session) HeaderLocked() bool {
	return s.headerLocked
}

// Context returns a copy of the current inputs.
func (s *Session) Context() BuilderContext {
	return s.ctx
}

// Update applies fn to the current inputs.
func (s *Session) Update(fn func(*BuilderContext)) {
	next := s.ctx
	fn(&next)
	if s.headerLocked {
		next.Header = true
	}
	next.LinesToIgnore = max(next.LinesToIgnore, 0)
	s.ctx = next
}

// Last returns the last successful build, or nil.
func (s *Session) Last() *Result {
	return s.last
}

// LoadDescriptor applies a previously generated descriptor to the current
// inputs. A missing file is not an error. On failure the inputs are left
// unchanged.
func (s *Session) LoadDescriptor(path string) error {
	wb := s.handle.Workbook()
	if wb == nil {
		return nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return NewIOError("open", path, err)
	}
	defer f.Close()

	parsed, err := vrt.Parse(f)
	if err != nil {
		return err
	}

	next := s.ctx
	next.Geometry = parsed.Geometry
	if parsed.LayerName != "" {
		next.LayerName = parsed.LayerName
	}
	if parsed.Sheet != "" {
		if slices.Contains(wb.Sheets(), parsed.Sheet) {
			next.Sheet = parsed.Sheet
		} else {
			s.notify(SeverityWarning, fmt.Sprintf("Sheet %s not found in %s", parsed.Sheet, filepath.Base(s.ctx.SourcePath)))
		}
	}
	if !s.headerLocked && (parsed.HeaderRow || len(parsed.Fields) > 0) {
		next.Header = parsed.HeaderRow || headerFromFields(parsed.Fields)
	}
	if parsed.Offset != nil {
		win, err := s.builder.opts.Policies.Resolver(wb.Driver(), next.LinesToIgnore, next.Header)
		if err != nil {
			return err
		}
		win.SetOffset(*parsed.Offset)
		next.LinesToIgnore = win.LinesToIgnore
	}
	next.CRS = parsed.CRS
	next.Coordinates.X = destName(parsed.Fields, parsed.X)
	next.Coordinates.Y = destName(parsed.Fields, parsed.Y)

	s.ctx = next
	return nil
}

// headerFromFields guesses the header toggle for descriptors without the
// header row marker: without a header every destination name equals its
// source name.
func headerFromFields(fields []models.ColumnDescriptor) bool {
	for _, f := range fields {
		if f.Name != f.Src {
			return true
		}
	}
	return false
}

// destName maps a geometry source column to its destination name.
func destName(fields []models.ColumnDescriptor, src string) string {
	for _, f := range fields {
		if f.Src == src {
			return f.Name
		}
	}
	return src
}

// DataRegion locates the block of non-empty cells in the current sheet.
// Its first row is a suggestion for LinesToIgnore.
func (s *Session) DataRegion() (infer.Region, bool, error) {
	wb := s.handle.Workbook()
	if wb == nil {
		return infer.Region{}, false, ErrNoSource
	}
	if s.ctx.Sheet == "" {
		return infer.Region{}, false, ErrNoSheet
	}
	src, err := wb.Sheet(s.ctx.Sheet)
	if err != nil {
		return infer.Region{}, false, err
	}
	return infer.DetectRegion(src, infer.DefaultRegionParams())
}

// Preview builds the sample descriptor without touching the inputs.
func (s *Session) Preview(maxRows int) (*Result, error) {
	res, err := s.builder.BuildPreview(s.ctx, s.handle.Workbook(), maxRows)
	if err != nil {
		return nil, err
	}
	s.last = res
	return res, nil
}

// Build builds the final descriptor without writing it.
func (s *Session) Build() (*Result, error) {
	res, err := s.builder.BuildFinal(s.ctx, s.handle.Workbook())
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			for _, p := range ve.Problems {
				s.notify(SeverityWarning, p.Error())
			}
		}
		return nil, err
	}
	s.last = res
	return res, nil
}

// WritePreview builds the sample descriptor and overwrites the preview file.
func (s *Session) WritePreview(maxRows int) (string, error) {
	res, err := s.Preview(maxRows)
	if err != nil {
		return "", err
	}
	path := PreviewPath(s.ctx.SourcePath)
	if err := writeFile(path, res.Document); err != nil {
		s.notify(SeverityWarning, fmt.Sprintf("Impossible to open VRT file %s", path))
		return "", err
	}
	return path, nil
}

// WriteFinal builds and writes the final descriptor. An existing file with
// identical content is left alone; different content is replaced only when
// overwrite is set.
func (s *Session) WriteFinal(overwrite bool) (string, error) {
	res, err := s.Build()
	if err != nil {
		return "", err
	}

	path := FinalPath(s.ctx.SourcePath)
	old, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(old, res.Document):
		return path, nil
	case err == nil && !overwrite:
		return "", fmt.Errorf("%w: %s", ErrDescriptorExists, path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", NewIOError("read", path, err)
	}

	if err := writeFile(path, res.Document); err != nil {
		s.notify(SeverityWarning, fmt.Sprintf("Impossible to open VRT file %s", path))
		return "", err
	}
	return path, nil
}

func (s *Session) notify(sev Severity, msg string) {
	s.builder.opts.Notify(sev, msg)
}

// writeFile replaces path with data. The file is closed on every path and
// a failed close is reported.
func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return NewIOError("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = NewIOError("write", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return NewIOError("write", path, err)
	}
	return nil
}
