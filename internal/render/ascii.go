package render

import (
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/robometrics/internal/trace"
)

// ASCIIPlot renders values as a terminal line chart.
func ASCIIPlot(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// ASCIIPlotMany renders several series on shared axes, coloured in order.
func ASCIIPlotMany(series [][]float64, caption string, width, height int) string {
	var data [][]float64
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors[:min(len(data), len(colors))]...),
	)
}

// ASCIIPaths draws robot paths on a braille canvas of width x height cells,
// scaled to fit the bounding box of every point.
func ASCIIPaths(paths [][]trace.Vec2, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, path := range paths {
		for _, p := range path {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	c := NewCanvas(width, height)
	if math.IsInf(minX, 1) {
		return c.String()
	}

	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	subW, subH := float64(width*2-1), float64(height*4-1)
	toPixel := func(p trace.Vec2) (int, int) {
		x := int(math.Round((p.X - minX) / spanX * subW))
		// Canvas rows grow downwards.
		y := int(math.Round((maxY - p.Y) / spanY * subH))
		return x, y
	}

	for _, path := range paths {
		for i, p := range path {
			x, y := toPixel(p)
			if i == 0 {
				c.Set(x, y)
				continue
			}
			px, py := toPixel(path[i-1])
			c.DrawLine(px, py, x, y)
		}
	}
	return c.String()
}

// Sparkline renders values as a single row of block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width < 1 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
