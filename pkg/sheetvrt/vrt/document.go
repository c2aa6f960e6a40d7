// Package vrt generates and parses OGR virtual layer (VRT) descriptor
// documents for spreadsheet sheets.
package vrt

import "encoding/xml"

// Element names understood by Parse and written by Generate.
const (
	elemDataSource    = "OGRVRTDataSource"
	elemLayer         = "OGRVRTLayer"
	elemSrcDataSource = "SrcDataSource"
	elemSrcLayer      = "SrcLayer"
	elemSrcSQL        = "SrcSql"
	elemField         = "Field"
	elemGeometryType  = "GeometryType"
	elemLayerSRS      = "LayerSRS"
	elemGeometryField = "GeometryField"
)

// headerRowMarker is the layer comment recording a skipped header row.
const headerRowMarker = " sheetvrt:header-row "

const (
	geometryPoint    = "wkbPoint"
	pointFromColumns = "PointFromColumns"
	sqlDialect       = "sqlite"
)

type dataSourceXML struct {
	XMLName xml.Name `xml:"OGRVRTDataSource"`
	Layer   layerXML `xml:"OGRVRTLayer"`
}

type layerXML struct {
	Name          string            `xml:"name,attr"`
	Note          string            `xml:",comment"`
	SrcDataSource srcDataSourceXML  `xml:"SrcDataSource"`
	SrcSQL        *srcSQLXML        `xml:"SrcSql,omitempty"`
	SrcLayer      string            `xml:"SrcLayer,omitempty"`
	Fields        []fieldXML        `xml:"Field"`
	GeometryType  string            `xml:"GeometryType,omitempty"`
	LayerSRS      string            `xml:"LayerSRS,omitempty"`
	GeometryField *geometryFieldXML `xml:"GeometryField,omitempty"`
}

type srcDataSourceXML struct {
	RelativeToVRT int    `xml:"relativeToVRT,attr"`
	Path          string `xml:",chardata"`
}

type srcSQLXML struct {
	Dialect string `xml:"dialect,attr"`
	Query   string `xml:",chardata"`
}

type fieldXML struct {
	Name string `xml:"name,attr"`
	Src  string `xml:"src,attr"`
	Type string `xml:"type,attr"`
}

type geometryFieldXML struct {
	Encoding string `xml:"encoding,attr"`
	X        string `xml:"x,attr"`
	Y        string `xml:"y,attr"`
}
