package models

// Selection chooses the rows a descriptor exposes: either a whole sheet or a
// query over it.
type Selection struct {
	// Sheet is the sheet or table name.
	Sheet string `json:"sheet"`
	// Query is the generated SQL; empty means a literal sheet selection.
	Query string `json:"query,omitempty"`
}

// IsQuery reports whether the selection is expressed as SQL.
func (s Selection) IsQuery() bool {
	return s.Query != ""
}

// CoordinateBinding names the destination fields holding point coordinates.
type CoordinateBinding struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Complete reports whether both axes are set.
func (b CoordinateBinding) Complete() bool {
	return b.X != "" && b.Y != ""
}

// LayerDescriptor is the in-memory form of a virtual layer descriptor.
type LayerDescriptor struct {
	// LayerName is the name of the exposed layer.
	LayerName string `json:"layer_name"`
	// SourceRef is the source file reference as written to the document.
	SourceRef string `json:"source_ref"`
	// SourceRelative tells whether SourceRef is relative to the descriptor.
	SourceRelative bool `json:"source_relative"`
	// HeaderRow is set when the row above the data was read as field names
	// and skipped by the offset.
	HeaderRow bool `json:"header_row"`
	// Selection is the sheet or query selection clause.
	Selection Selection `json:"selection"`
	// Columns lists the fields in source order.
	Columns []ColumnDescriptor `json:"columns"`
	// Geometry enables point-from-columns geometry.
	Geometry bool `json:"geometry"`
	// Coordinates is meaningful only when Geometry is true.
	Coordinates *CoordinateBinding `json:"coordinates,omitempty"`
	// CRS is the spatial reference text, e.g. "EPSG:4326".
	CRS string `json:"crs,omitempty"`
}
