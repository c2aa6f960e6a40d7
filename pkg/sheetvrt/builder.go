package sheetvrt

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/coords"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/infer"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/source"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/vrt"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/window"
)

// Result is one built descriptor.
type Result struct {
	// Descriptor is the in-memory layer description.
	Descriptor models.LayerDescriptor
	// Document is the serialized VRT.
	Document []byte
	// Window is the resolved row window.
	Window window.Resolver
	// Limit is the row count past the window offset.
	Limit int
	// GeometryAllowed is false when geometry cannot be combined with the
	// current offset; callers disable the geometry option.
	GeometryAllowed bool
	// Guessed holds the coordinate fields after guessing.
	Guessed models.CoordinateBinding
}

// Builder turns a BuilderContext and an open workbook into descriptors.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// Policies returns the driver table in use.
func (b *Builder) Policies() window.Policies {
	return b.opts.Policies
}

// BuildFinal builds the full descriptor with geometry honored.
func (b *Builder) BuildFinal(bc BuilderContext, wb source.Workbook) (*Result, error) {
	return b.build(bc, wb, vrt.Full, 0)
}

// BuildPreview builds a geometry-free descriptor capped to maxRows rows.
// A non-positive maxRows uses the configured sample size.
func (b *Builder) BuildPreview(bc BuilderContext, wb source.Workbook, maxRows int) (*Result, error) {
	if maxRows <= 0 {
		maxRows = b.opts.SampleRows
	}
	return b.build(bc, wb, vrt.Sample, maxRows)
}

func (b *Builder) build(bc BuilderContext, wb source.Workbook, variant vrt.Variant, maxRows int) (*Result, error) {
	in := validationInput{ctx: bc, hasSrc: wb != nil}
	if err := aggregate(runRules(finalRules[:2], in)); err != nil {
		return nil, err
	}

	src, err := wb.Sheet(bc.Sheet)
	if err != nil {
		return nil, fmt.Errorf("open sheet %q: %w", bc.Sheet, err)
	}

	win, err := b.opts.Policies.Resolver(wb.Driver(), bc.LinesToIgnore, bc.Header)
	if err != nil {
		return nil, err
	}
	offset := win.Offset()

	inf, err := infer.Run(src, infer.Request{
		Offset:  offset,
		Header:  win.Header,
		MaxRows: maxRows,
	})
	if err != nil {
		return nil, fmt.Errorf("infer fields: %w", err)
	}

	limit := win.Limit(src.FeatureCount(), inf.Sample.NonEmptyRowCount)

	selection := vrt.NewSelection(bc.Sheet, offset, limit)
	if variant == vrt.Sample && limit > maxRows {
		// Preview documents carry no geometry, so a query is always safe.
		limit = maxRows
		selection = models.Selection{Sheet: bc.Sheet, Query: vrt.Query(bc.Sheet, limit, offset)}
	}

	allowed := window.GeometryAllowed(offset, b.opts.SQLPointCompat)
	geometry := bc.Geometry && allowed && variant == vrt.Full
	if bc.Geometry && !allowed && variant == vrt.Full {
		b.opts.Notify(SeverityWarning, "geometry disabled: the target library does not support "+
			"query selections mixed with point-from-columns; set lines to ignore to 0 or enable sql_point_compat")
	}

	guessed := coords.Guess(models.ColumnNames(inf.Columns), bc.Coordinates)

	if variant == vrt.Full {
		in.geometry = geometry
		in.coords = guessed
		in.columns = inf.Columns
		if err := aggregate(runRules(finalRules, in)); err != nil {
			return nil, err
		}
	}

	desc := models.LayerDescriptor{
		LayerName:      bc.LayerName,
		SourceRef:      sourceRef(bc.SourcePath),
		SourceRelative: true,
		HeaderRow:      win.HeaderRowSkipped(),
		Selection:      selection,
		Columns:        inf.Columns,
		Geometry:       geometry,
		CRS:            bc.CRS,
	}
	if geometry {
		c := guessed
		desc.Coordinates = &c
	}

	doc, err := vrt.Generate(desc, variant)
	if err != nil {
		if errors.Is(err, vrt.ErrUnknownField) {
			return nil, &ValidationError{Problems: []error{err}}
		}
		return nil, err
	}

	b.opts.Logger.Debug("descriptor built",
		"sheet", bc.Sheet,
		"preview", variant == vrt.Sample,
		"offset", offset,
		"limit", limit,
		"columns", len(inf.Columns),
		"geometry", geometry)

	return &Result{
		Descriptor:      desc,
		Document:        doc,
		Window:          win,
		Limit:           limit,
		GeometryAllowed: allowed,
		Guessed:         guessed,
	}, nil
}

// FinalPath is where the descriptor for sourcePath is written.
func FinalPath(sourcePath string) string {
	return sourcePath + ".vrt"
}

// PreviewPath is where the transient preview descriptor is written.
func PreviewPath(sourcePath string) string {
	return sourcePath + ".tmp.vrt"
}

// sourceRef returns the source path relative to the descriptor directory.
// Descriptors are always written next to their source, so this is the base
// name.
func sourceRef(sourcePath string) string {
	return filepath.ToSlash(filepath.Base(sourcePath))
}
