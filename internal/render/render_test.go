package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/robometrics/internal/trace"
)

func TestGetPalette(t *testing.T) {
	assert.Equal(t, "latte", GetPalette("latte").Name)
	assert.Equal(t, "mocha", GetPalette("neon").Name)
	assert.Equal(t, []string{"mocha", "latte", "ocean", "minimal"}, PaletteNames())
}

func TestPaletteColors(t *testing.T) {
	pal := PaletteLatte
	assert.Equal(t, pal.Series[0], pal.Hex(len(pal.Series)))

	c := ParseHex("#1e66f5")
	assert.Equal(t, uint8(0x1e), c.R)
	assert.Equal(t, uint8(0x66), c.G)
	assert.Equal(t, uint8(0xf5), c.B)
	assert.Equal(t, uint8(0xff), ParseHex("red").R)

	assert.Equal(t, "#abcdef", pal.RobotHex("#abcdef", 3))
	assert.Equal(t, pal.Hex(3), pal.RobotHex("", 3))
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 10)

	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(3, 3))
	assert.False(t, c.IsSet(1, 0))
	assert.Equal(t, string([]rune{0x2801, 0x2880})+"\n", c.String())
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		assert.True(t, c.IsSet(x, 0), "x=%d", x)
	}
}

func TestASCIIPaths(t *testing.T) {
	out := ASCIIPaths([][]trace.Vec2{{{X: 0, Y: 0}, {X: 10, Y: 10}}}, 5, 3)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	// the diagonal runs from bottom-left to top-right
	assert.NotEqual(t, string(rune(brailleBlank)), string([]rune(lines[0])[4]))
	assert.NotEqual(t, string(rune(brailleBlank)), string([]rune(lines[2])[0]))

	empty := ASCIIPaths(nil, 2, 1)
	assert.Equal(t, string([]rune{brailleBlank, brailleBlank})+"\n", empty)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▅█", Sparkline([]float64{0, 0.6, 1}, 3))
	assert.Equal(t, "───", Sparkline(nil, 3))
}

func TestASCIIPlot(t *testing.T) {
	assert.Empty(t, ASCIIPlot(nil, "empty", 10, 5))
	out := ASCIIPlot([]float64{1, 2, 3, 2, 1}, "speed", 20, 5)
	assert.Contains(t, out, "speed")

	many := ASCIIPlotMany([][]float64{{1, 2}, nil, {2, 1}}, "two", 10, 4)
	assert.Contains(t, many, "two")
}

func TestSVGFigures(t *testing.T) {
	dir := t.TempDir()
	pal := PaletteMocha

	require.NoError(t, BoxPlot(filepath.Join(dir, "box.svg"), Labels{Title: "distance", X: "robots", Y: "m"},
		[]Group{{Label: "5", Values: []float64{1, 2, 3}}, {Label: "10"}, {Label: "15", Values: []float64{4, 6}}}, pal))

	require.NoError(t, LinePlot(filepath.Join(dir, "line.svg"), Labels{Title: "flow"},
		[]Series{{Name: "qout", X: []float64{0, 1, 2}, Y: []float64{0, 0.9, 1.7}}}, true, pal))

	require.NoError(t, DeviationPlot(filepath.Join(dir, "dev.svg"), Labels{Title: "r0"},
		[]trace.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}},
		[]trace.Vec2{{X: 1, Y: 1}, {X: 5, Y: -1}},
		[]trace.Vec2{{X: 1, Y: 0}, {X: 5, Y: 0}}, pal))

	require.NoError(t, PathPlot(filepath.Join(dir, "paths", "paths.svg"), Labels{Title: "paths"},
		[]Track{{Name: "r0", Points: []trace.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}, Waypoints: []trace.Vec2{{X: 0, Y: 0}, {X: 2, Y: 2}}}}, pal))

	for _, name := range []string{"box.svg", "line.svg", "dev.svg", filepath.Join("paths", "paths.svg")} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "<svg", name)
	}
}

func TestSVGFigureErrors(t *testing.T) {
	dir := t.TempDir()
	err := BoxPlot(filepath.Join(dir, "box.svg"), Labels{}, []Group{{Label: "empty"}}, PaletteMocha)
	assert.Error(t, err)

	err = LinePlot(filepath.Join(dir, "line.svg"), Labels{}, []Series{{X: []float64{1}, Y: nil}}, false, PaletteMocha)
	assert.ErrorIs(t, err, trace.ErrDimensionMismatch)

	err = DeviationPlot(filepath.Join(dir, "dev.svg"), Labels{}, nil, []trace.Vec2{{}}, nil, PaletteMocha)
	assert.ErrorIs(t, err, trace.ErrDimensionMismatch)
}

func TestPlotsSkipInfiniteValues(t *testing.T) {
	dir := t.TempDir()

	box := filepath.Join(dir, "ldj.svg")
	groups := []Group{
		{Label: "2", Values: []float64{-3.1, math.Inf(1), -2.4}},
		{Label: "4", Values: []float64{math.Inf(1)}},
	}
	require.NoError(t, BoxPlot(box, Labels{Title: "ldj"}, groups, GetPalette("mocha")))
	assert.FileExists(t, box)

	line := filepath.Join(dir, "makespan.svg")
	series := []Series{{Name: "mean", X: []float64{2, 4, 8}, Y: []float64{10, math.Inf(1), math.NaN()}}}
	require.NoError(t, LinePlot(line, Labels{Title: "makespan"}, series, false, PaletteLatte))
	assert.FileExists(t, line)

	var buf bytes.Buffer
	require.NoError(t, LineChart(&buf, Labels{Title: "makespan"}, series, PaletteLatte))
	assert.Contains(t, buf.String(), "makespan")
}

func TestFiniteValues(t *testing.T) {
	values, dropped := finiteValues([]float64{1, math.Inf(-1), math.NaN(), 2})
	assert.Equal(t, []float64{1, 2}, values)
	assert.Equal(t, 2, dropped)
}

func TestHTMLCharts(t *testing.T) {
	var buf bytes.Buffer
	err := LineChart(&buf, Labels{Title: "speeds", X: "t", Y: "m/s"},
		[]Series{{Name: "r0", X: []float64{0, 1}, Y: []float64{0, 2}}}, PaletteLatte)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "speeds")

	buf.Reset()
	err = PositionsChart(&buf, Labels{Title: "positions"},
		[]Track{{Name: "r0", Color: "#ff0000", Points: []trace.Vec2{{X: 1, Y: 2}}}}, PaletteMocha)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "#ff0000")
}
