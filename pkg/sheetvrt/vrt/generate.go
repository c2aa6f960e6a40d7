package vrt

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
)

// Variant selects the full document or the geometry-free sample.
type Variant int

const (
	// Full honors the geometry flag.
	Full Variant = iota
	// Sample never emits geometry.
	Sample
)

// ErrUnknownField indicates a coordinate binding that names no column.
var ErrUnknownField = errors.New("coordinate field not among columns")

// Generate serializes d. The geometry section is written only for Full
// documents with d.Geometry set.
func Generate(d models.LayerDescriptor, v Variant) ([]byte, error) {
	doc := dataSourceXML{
		Layer: layerXML{
			Name: d.LayerName,
			SrcDataSource: srcDataSourceXML{
				Path: d.SourceRef,
			},
		},
	}
	if d.HeaderRow {
		doc.Layer.Note = headerRowMarker
	}
	if d.SourceRelative {
		doc.Layer.SrcDataSource.RelativeToVRT = 1
	}

	if d.Selection.IsQuery() {
		doc.Layer.SrcSQL = &srcSQLXML{Dialect: sqlDialect, Query: d.Selection.Query}
	} else {
		doc.Layer.SrcLayer = d.Selection.Sheet
	}

	for _, c := range d.Columns {
		doc.Layer.Fields = append(doc.Layer.Fields, fieldXML{
			Name: c.Name,
			Src:  c.Src,
			Type: c.Type.String(),
		})
	}

	if d.Geometry && v == Full {
		gf, err := geometryField(d)
		if err != nil {
			return nil, err
		}
		doc.Layer.GeometryType = geometryPoint
		doc.Layer.LayerSRS = d.CRS
		doc.Layer.GeometryField = gf
	}

	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal vrt: %w", err)
	}

	buf := make([]byte, 0, len(xml.Header)+len(out)+1)
	buf = append(buf, xml.Header...)
	buf = append(buf, out...)
	buf = append(buf, '\n')
	return buf, nil
}

// geometryField binds the chosen destination fields by their source names.
func geometryField(d models.LayerDescriptor) (*geometryFieldXML, error) {
	if d.Coordinates == nil || !d.Coordinates.Complete() {
		return nil, fmt.Errorf("%w: coordinates not set", ErrUnknownField)
	}
	x, ok := models.ColumnByName(d.Columns, d.Coordinates.X)
	if !ok {
		return nil, fmt.Errorf("%w: x=%q", ErrUnknownField, d.Coordinates.X)
	}
	y, ok := models.ColumnByName(d.Columns, d.Coordinates.Y)
	if !ok {
		return nil, fmt.Errorf("%w: y=%q", ErrUnknownField, d.Coordinates.Y)
	}
	return &geometryFieldXML{Encoding: pointFromColumns, X: x.Src, Y: y.Src}, nil
}
