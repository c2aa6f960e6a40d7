package sheetvrt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/source"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/window"
)

type sheetRows struct {
	name string
	rows [][]any
}

// writeWorkbook saves an xlsx file named name in dir with the given sheets
// in order.
func writeWorkbook(t *testing.T, dir, name string, sheets ...sheetRows) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

var stationRows = [][]any{
	{"Station list"},
	{"name", "lon", "lat"},
	{"a", 2.35, 48.85},
	{"b", 13.4, 52.52},
	{"c", -0.12, 51.5},
}

var headerFirstRows = [][]any{
	{"name", "lon", "lat"},
	{"a", 2.35, 48.85},
	{"b", 13.4, 52.52},
}

func newTestSession(t *testing.T, rec *recorder, compat bool) *Session {
	t.Helper()
	opts := quietOptions(rec)
	opts.SQLPointCompat = compat
	s := NewSession(NewBuilder(opts))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionOpenDefaults(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "stations.xlsx",
		sheetRows{name: "Stations", rows: stationRows},
		sheetRows{name: "Notes", rows: [][]any{{"x"}}},
	)

	s := newTestSession(t, nil, false)
	require.NoError(t, s.Open(path))

	ctx := s.Context()
	assert.Equal(t, path, ctx.SourcePath)
	assert.Equal(t, "stations", ctx.LayerName)
	assert.Equal(t, "Stations", ctx.Sheet)
	assert.False(t, ctx.Header)
	assert.False(t, s.HeaderLocked())
	assert.Equal(t, "XLSX", s.Driver())
	assert.Equal(t, []string{"Stations", "Notes"}, s.Sheets())
	assert.Nil(t, s.Last())
}

func TestSessionOpenErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown extension", func(t *testing.T) {
		s := newTestSession(t, nil, false)
		err := s.Open(filepath.Join(dir, "a.gpkg"))

		var unsupported *window.UnsupportedDriverError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "gpkg", unsupported.Driver)
	})

	t.Run("driver without reader", func(t *testing.T) {
		rec := &recorder{}
		s := newTestSession(t, rec, false)
		err := s.Open(filepath.Join(dir, "a.ods"))

		var ioErr *IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "open", ioErr.Op)
		assert.ErrorIs(t, err, source.ErrNoReader)
		require.Len(t, rec.msgs, 1)
		assert.Contains(t, rec.msgs[0], "Could not open")
	})
}

func TestSessionHeaderLockedForNativeDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pts.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,lon,lat\na,1.5,2.5\n"), 0o644))

	s := newTestSession(t, nil, false)
	require.NoError(t, s.Open(path))
	assert.True(t, s.HeaderLocked())
	assert.True(t, s.Context().Header)

	s.Update(func(bc *BuilderContext) {
		bc.Header = false
		bc.LinesToIgnore = -3
	})
	assert.True(t, s.Context().Header)
	assert.Equal(t, 0, s.Context().LinesToIgnore)
}

func TestSessionWriteFinal(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "stations.xlsx", sheetRows{name: "Stations", rows: stationRows})

	s := newTestSession(t, nil, false)
	require.NoError(t, s.Open(path))

	out, err := s.WriteFinal(false)
	require.NoError(t, err)
	assert.Equal(t, path+".vrt", out)
	first, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotNil(t, s.Last())
	assert.Equal(t, s.Last().Document, first)

	_, err = s.WriteFinal(false)
	require.NoError(t, err, "identical content is a no-op")

	s.Update(func(bc *BuilderContext) { bc.LayerName = "renamed" })
	_, err = s.WriteFinal(false)
	require.ErrorIs(t, err, ErrDescriptorExists)

	unchanged, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, first, unchanged)

	_, err = s.WriteFinal(true)
	require.NoError(t, err)
	replaced, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(replaced), `name="renamed"`)
}

func TestSessionReloadsWindow(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "stations.xlsx",
		sheetRows{name: "Notes", rows: [][]any{{"x"}}},
		sheetRows{name: "Stations", rows: stationRows},
	)

	first := newTestSession(t, nil, false)
	require.NoError(t, first.Open(path))
	first.Update(func(bc *BuilderContext) {
		bc.Sheet = "Stations"
		bc.LinesToIgnore = 1
		bc.Header = true
		bc.LayerName = "pts"
	})
	res, err := first.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "lon", "lat"}, models.ColumnNames(res.Descriptor.Columns))
	_, err = first.WriteFinal(false)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestSession(t, nil, false)
	require.NoError(t, second.Open(path))

	ctx := second.Context()
	assert.Equal(t, "Stations", ctx.Sheet)
	assert.Equal(t, "pts", ctx.LayerName)
	assert.Equal(t, 1, ctx.LinesToIgnore)
	assert.True(t, ctx.Header)
	assert.False(t, ctx.Geometry)

	_, err = second.WriteFinal(false)
	assert.NoError(t, err, "reloaded inputs rebuild the same document")
}

func TestSessionReloadsGeometry(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "pts.xlsx", sheetRows{name: "Sheet1", rows: headerFirstRows})

	first := newTestSession(t, nil, true)
	require.NoError(t, first.Open(path))
	first.Update(func(bc *BuilderContext) {
		bc.Header = true
		bc.Geometry = true
		bc.CRS = "EPSG:4326"
	})
	_, err := first.WriteFinal(false)
	require.NoError(t, err)

	doc, err := os.ReadFile(FinalPath(path))
	require.NoError(t, err)
	assert.Contains(t, string(doc), `x="Field2"`)
	assert.Contains(t, string(doc), `y="Field3"`)
	require.NoError(t, first.Close())

	second := newTestSession(t, nil, true)
	require.NoError(t, second.Open(path))

	ctx := second.Context()
	assert.True(t, ctx.Geometry)
	assert.True(t, ctx.Header)
	assert.Equal(t, 0, ctx.LinesToIgnore)
	assert.Equal(t, "EPSG:4326", ctx.CRS)
	assert.Equal(t, models.CoordinateBinding{X: "lon", Y: "lat"}, ctx.Coordinates)

	_, err = second.WriteFinal(false)
	assert.NoError(t, err)
}

func TestSessionMalformedDescriptorKeepsDefaults(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "stations.xlsx", sheetRows{name: "Stations", rows: stationRows})
	require.NoError(t, os.WriteFile(FinalPath(path), []byte("<OGRVRTDataSource><OGRVRTLayer"), 0o644))

	rec := &recorder{}
	s := newTestSession(t, rec, false)
	require.NoError(t, s.Open(path))

	ctx := s.Context()
	assert.Equal(t, "stations", ctx.LayerName)
	assert.Equal(t, "Stations", ctx.Sheet)
	assert.Equal(t, 0, ctx.LinesToIgnore)
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "warning: An error occurred while loading the existing VRT file", rec.msgs[0])
}

func TestSessionDescriptorWithUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "stations.xlsx", sheetRows{name: "Stations", rows: stationRows})
	doc := `<OGRVRTDataSource><OGRVRTLayer name="old">
<SrcDataSource relativeToVRT="1">stations.xlsx</SrcDataSource>
<SrcSql dialect="sqlite">SELECT * FROM Gone LIMIT 3 OFFSET 2</SrcSql>
</OGRVRTLayer></OGRVRTDataSource>`
	require.NoError(t, os.WriteFile(FinalPath(path), []byte(doc), 0o644))

	rec := &recorder{}
	s := newTestSession(t, rec, false)
	require.NoError(t, s.Open(path))

	ctx := s.Context()
	assert.Equal(t, "Stations", ctx.Sheet)
	assert.Equal(t, "old", ctx.LayerName)
	assert.Equal(t, 2, ctx.LinesToIgnore)
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "warning: Sheet Gone not found in stations.xlsx", rec.msgs[0])
}

func TestSessionWritePreview(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "pts.xlsx", sheetRows{name: "Sheet1", rows: headerFirstRows})

	s := newTestSession(t, nil, true)
	require.NoError(t, s.Open(path))
	s.Update(func(bc *BuilderContext) {
		bc.Header = true
		bc.Geometry = true
	})

	out, err := s.WritePreview(1)
	require.NoError(t, err)
	assert.Equal(t, path+".tmp.vrt", out)

	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "GeometryField")
	assert.Contains(t, string(doc), "LIMIT 1 OFFSET 1")

	_, err = s.WritePreview(5)
	require.NoError(t, err, "preview file is always replaced")
	doc, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "LIMIT 2 OFFSET 1")

	_, err = os.Stat(FinalPath(path))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSessionBuildReportsProblems(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "plain.xlsx", sheetRows{name: "Sheet1", rows: [][]any{{"a", "b"}}})

	rec := &recorder{}
	s := newTestSession(t, rec, false)
	require.NoError(t, s.Open(path))
	s.Update(func(bc *BuilderContext) { bc.Geometry = true })

	_, err := s.Build()
	require.ErrorIs(t, err, ErrNoXField)
	assert.Equal(t, []string{
		"warning: " + ErrNoXField.Error(),
		"warning: " + ErrNoYField.Error(),
	}, rec.msgs)
	assert.Nil(t, s.Last())
}

func TestSessionCustomOpener(t *testing.T) {
	mem := newMemWorkbook("XLSX", false).add("Data", mixedGrid)

	s := newTestSession(t, nil, false)
	s.SetOpener(func(path, driver string, native bool) (source.Workbook, error) {
		return mem, nil
	})
	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "virtual.xlsx")))

	res, err := s.Preview(0)
	require.NoError(t, err)
	assert.Equal(t, "Data", res.Descriptor.Selection.Sheet)
	assert.Equal(t, 5, res.Limit)
	assert.Same(t, res, s.Last())
}

func TestSessionDataRegion(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "stations.xlsx", sheetRows{name: "Stations", rows: stationRows})

	s := newTestSession(t, nil, false)
	_, _, err := s.DataRegion()
	require.ErrorIs(t, err, ErrNoSource)

	require.NoError(t, s.Open(path))
	region, ok, err := s.DataRegion()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, region.SuggestedLinesToIgnore())
	assert.Equal(t, 4, region.LastRow)
	assert.Equal(t, 2, region.LastCol)
}

func TestSessionReloadsBlankHeaderRow(t *testing.T) {
	// Blank header cells fall back to placeholders equal to their sources,
	// so only the marker tells that a header row was skipped.
	mem := newMemWorkbook("XLSX", false).add("Data", [][]string{
		{"title"},
		{"", ""},
		{"1", "2.5"},
		{"2", "3.5"},
	})
	opener := func(path, driver string, native bool) (source.Workbook, error) {
		return mem, nil
	}
	path := filepath.Join(t.TempDir(), "blank.xlsx")

	first := newTestSession(t, nil, false)
	first.SetOpener(opener)
	require.NoError(t, first.Open(path))
	first.Update(func(bc *BuilderContext) {
		bc.LinesToIgnore = 1
		bc.Header = true
	})
	res, err := first.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"Field1", "Field2"}, models.ColumnNames(res.Descriptor.Columns))
	assert.True(t, res.Descriptor.HeaderRow)
	_, err = first.WriteFinal(false)
	require.NoError(t, err)

	second := newTestSession(t, nil, false)
	second.SetOpener(opener)
	require.NoError(t, second.Open(path))

	ctx := second.Context()
	assert.True(t, ctx.Header)
	assert.Equal(t, 1, ctx.LinesToIgnore)

	_, err = second.WriteFinal(false)
	assert.NoError(t, err)
}
