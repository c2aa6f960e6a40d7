package vrt

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
)

// ErrEmptyDocument indicates input without any element.
var ErrEmptyDocument = errors.New("empty document")

// ParseError reports a descriptor that could not be read.
type ParseError struct {
	// Line is the input line of the failure, 0 if unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse vrt: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse vrt: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parsed is the builder state recovered from a descriptor. Pointer fields
// are nil when the document does not set them.
type Parsed struct {
	LayerName string
	// Sheet is the sheet named by SrcLayer or the FROM clause of SrcSql.
	Sheet string
	// Offset is the absolute row offset; 0 for a literal sheet selection.
	Offset *int
	// Geometry is true when a GeometryType element is present.
	Geometry bool
	CRS      string
	X, Y     string
	// SourceRef is the SrcDataSource text.
	SourceRef string
	// HeaderRow is true when the document records a skipped header row.
	HeaderRow bool
	// Fields lists Field entries in document order.
	Fields []models.ColumnDescriptor
}

// Parse reads a descriptor. Unknown elements are skipped with their
// subtree; only OGRVRTDataSource and OGRVRTLayer are descended into.
func Parse(r io.Reader) (Parsed, error) {
	var p Parsed

	dec := xml.NewDecoder(r)
	seen := false
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p, parseError(dec, err)
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		seen = true

		if se.Name.Local != elemDataSource {
			if err := dec.Skip(); err != nil {
				return p, parseError(dec, err)
			}
			continue
		}
		if err := parseDataSource(dec, &p); err != nil {
			return p, parseError(dec, err)
		}
	}

	if !seen {
		return p, &ParseError{Err: ErrEmptyDocument}
	}
	return p, nil
}

// parseDataSource consumes tokens up to the end of OGRVRTDataSource.
func parseDataSource(dec *xml.Decoder, p *Parsed) error {
	for {
		token, err := dec.Token()
		if err != nil {
			return unexpectedEOF(err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == elemLayer {
				if err := parseLayer(dec, t, p); err != nil {
					return err
				}
				continue
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseLayer consumes tokens up to the end of OGRVRTLayer, applying each
// recognized child in document order.
func parseLayer(dec *xml.Decoder, start xml.StartElement, p *Parsed) error {
	p.LayerName = attr(start, "name")

	for {
		token, err := dec.Token()
		if err != nil {
			return unexpectedEOF(err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if err := parseLayerChild(dec, t, p); err != nil {
				return err
			}
		case xml.Comment:
			if strings.TrimSpace(string(t)) == strings.TrimSpace(headerRowMarker) {
				p.HeaderRow = true
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseLayerChild handles one child element and leaves the decoder after
// its end tag.
func parseLayerChild(dec *xml.Decoder, t xml.StartElement, p *Parsed) error {
	switch t.Name.Local {
	case elemSrcDataSource:
		text, err := readElementText(dec)
		p.SourceRef = strings.TrimSpace(text)
		return err

	case elemSrcLayer:
		text, err := readElementText(dec)
		p.Sheet = strings.TrimSpace(text)
		zero := 0
		p.Offset = &zero
		return err

	case elemSrcSQL:
		text, err := readElementText(dec)
		applyQuery(text, p)
		return err

	case elemGeometryType:
		p.Geometry = true

	case elemLayerSRS:
		text, err := readElementText(dec)
		p.CRS = strings.TrimSpace(text)
		return err

	case elemGeometryField:
		p.X = attr(t, "x")
		p.Y = attr(t, "y")

	case elemField:
		ft, err := models.ParseFieldType(attr(t, "type"))
		if err != nil {
			ft = models.String
		}
		p.Fields = append(p.Fields, models.ColumnDescriptor{
			Name: attr(t, "name"),
			Src:  attr(t, "src"),
			Type: ft,
		})
	}

	return dec.Skip()
}

// applyQuery picks the sheet after FROM and the absolute offset after
// OFFSET. A non-numeric offset is ignored.
func applyQuery(q string, p *Parsed) {
	var prev sqlToken
	for _, term := range tokenize(q) {
		switch {
		case prev.keyword("from"):
			p.Sheet = term.text
		case prev.keyword("offset"):
			if n, err := strconv.Atoi(term.text); err == nil {
				p.Offset = &n
			}
		}
		prev = term
	}
}

// readElementText collects character data up to the end of the current
// element, including text of nested elements.
func readElementText(dec *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := dec.Token()
		if err != nil {
			return text.String(), unexpectedEOF(err)
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func parseError(dec *xml.Decoder, err error) *ParseError {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Line: se.Line, Err: se}
	}
	line, _ := dec.InputPos()
	return &ParseError{Line: line, Err: err}
}
