package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"plotview/internal/geom"
)

func TestParseJSON_Grid(t *testing.T) {
	doc := `{"rows":[{"name":"layer0","cells":[
		{"x":0,"y":0.5,"label":"the","topValues":[{"text":"a","probability":0.7}]},
		{"x":"tok","y":null}
	]},{"cells":[{"x":1,"y":2}]}]}`

	d, err := ParseJSON([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, KindGrid, d.Kind)
	require.Len(t, d.Grid.Rows, 2)

	c, ok := d.Grid.At(0, 0)
	require.True(t, ok)
	require.Equal(t, "0", c.X)
	require.NotNil(t, c.Y)
	require.InDelta(t, 0.5, *c.Y, 1e-12)
	require.Equal(t, []TopValue{{Text: "a", Probability: 0.7}}, c.TopValues)

	c, ok = d.Grid.At(0, 1)
	require.True(t, ok)
	require.Equal(t, "tok", c.X)
	require.Nil(t, c.Y)

	_, ok = d.Grid.At(1, 1)
	require.False(t, ok)

	rows, cols := d.Grid.Bounds()
	require.Equal(t, geom.Span{Lo: 0, Hi: 1}, rows)
	require.Equal(t, geom.Span{Lo: 0, Hi: 1}, cols)
}

func TestParseJSON_Curves(t *testing.T) {
	d, err := ParseJSON([]byte(`{"series":[{"id":"a","points":[{"x":0,"y":0.1},{"x":2,"y":0.9}]}]}`))
	require.NoError(t, err)
	require.Equal(t, KindCurves, d.Kind)
	b := d.Curves.Bounds()
	require.Equal(t, geom.Range{Lo: 0, Hi: 2}, b.X)
	require.InDelta(t, 0.1, b.Y.Lo, 1e-12)
	require.InDelta(t, 0.9, b.Y.Hi, 1e-12)

	d, err = ParseJSON([]byte(`[{"id":"b","points":[{"x":1,"y":1}]}]`))
	require.NoError(t, err)
	require.Equal(t, KindCurves, d.Kind)
}

func TestParseJSON_Rejects(t *testing.T) {
	_, err := ParseJSON([]byte(`{"foo":1}`))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_EmptyDatasetsKeepTheirKind(t *testing.T) {
	d, err := ParseJSON([]byte(`{"rows":[]}`))
	require.NoError(t, err)
	require.Equal(t, KindGrid, d.Kind)
	require.Empty(t, d.Grid.Rows)

	d, err = ParseJSON([]byte(`{"series":[{"id":"a","points":[]}]}`))
	require.NoError(t, err)
	require.Equal(t, KindCurves, d.Kind)
	require.Equal(t, geom.DefaultBounds, d.Curves.Bounds())

	d, err = ParseCSV(strings.NewReader("id,x,y\n"))
	require.NoError(t, err)
	require.Equal(t, KindCurves, d.Kind)
	require.Zero(t, d.Curves.PointCount())

	d, err = ParseCSV(strings.NewReader("name,a,b\n"))
	require.NoError(t, err)
	require.Equal(t, KindGrid, d.Kind)
	require.Empty(t, d.Grid.Rows)

	_, err = ParseCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestCurves_BoundsFallback(t *testing.T) {
	require.Equal(t, geom.DefaultBounds, Curves{}.Bounds())

	one := Curves{Series: []Series{{ID: "a", Points: []Point{{X: 4, Y: 2}}}}}
	b := one.Bounds()
	require.Equal(t, geom.Range{Lo: 3.5, Hi: 4.5}, b.X)
	require.Equal(t, geom.Range{Lo: 1.5, Hi: 2.5}, b.Y)
}

func TestGrid_EmptyBounds(t *testing.T) {
	rows, cols := Grid{}.Bounds()
	require.Equal(t, geom.Span{}, rows)
	require.Equal(t, geom.Span{}, cols)
	require.Equal(t, geom.DefaultBounds.Y, Grid{}.ValueRange())
}

func TestParseCSV_Curves(t *testing.T) {
	src := "Series,X,Y\na,0,1\na,1,2\nb,0,3\nb,oops,4\n"
	d, err := ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, KindCurves, d.Kind)
	require.Len(t, d.Curves.Series, 2)
	require.Equal(t, "a", d.Curves.Series[0].ID)
	require.Len(t, d.Curves.Series[1].Points, 1)
}

func TestParseCSV_Grid(t *testing.T) {
	src := "row,c0,c1,c2\nr0,1,,3\nr1,4,5\n"
	d, err := ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, KindGrid, d.Kind)
	require.Equal(t, 3, d.Grid.ColumnCount())

	c, _ := d.Grid.At(0, 1)
	require.Nil(t, c.Y)
	c, _ = d.Grid.At(1, 2)
	require.Equal(t, "c2", c.X)
	require.Nil(t, c.Y)
}

func TestLoad_StampsIdentity(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "curves.csv")
	require.NoError(t, os.WriteFile(p, []byte("id,x,y\na,0,0\n"), 0o644))

	d1, err := Load(p, Options{})
	require.NoError(t, err)
	d2, err := Load(p, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, d1.ID())
	require.Equal(t, d1.ID(), d2.ID())
}

func TestLoad_Unsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.kml")
	require.NoError(t, os.WriteFile(p, []byte("<kml/>"), 0o644))

	_, err := Load(p, Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	require.Equal(t, "kml", le.Format)
}

func TestParse_PasteGetsFreshIdentity(t *testing.T) {
	a, err := Parse(`{"series":[{"id":"a","points":[{"x":0,"y":0}]}]}`)
	require.NoError(t, err)
	b, err := Parse(`{"series":[{"id":"a","points":[{"x":0,"y":0}]}]}`)
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())

	_, err = Parse("   ")
	require.ErrorIs(t, err, ErrEmptyDataset)
}
