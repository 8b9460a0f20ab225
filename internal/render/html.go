package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func initOpts(title string, pal Palette) opts.Initialization {
	theme := "white"
	if pal.Dark {
		theme = "dark"
	}
	return opts.Initialization{
		PageTitle:       title,
		Theme:           theme,
		Width:           "1000px",
		Height:          "700px",
		BackgroundColor: pal.Background,
	}
}

// LineChart writes an interactive chart with one line per series, such as
// speed over time or mean throughput per input flow. Non-finite points are
// skipped.
func LineChart(w io.Writer, l Labels, series []Series, pal Palette) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(l.Title, pal)),
		charts.WithTitleOpts(opts.Title{Title: l.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: l.X, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: l.Y, NameLocation: "middle", NameGap: 40}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)

	for i, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %s: %d times, %d values", s.Name, len(s.X), len(s.Y))
		}
		pts, dropped := finitePoints(s.X, s.Y)
		warnDropped(l.Title, s.Name, dropped)
		data := make([]opts.LineData, len(pts))
		for j, pt := range pts {
			data[j] = opts.LineData{Value: []interface{}{pt.X, pt.Y}}
		}
		line.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.Hex(i)}))
	}

	return line.Render(w)
}

// PositionsChart writes an interactive scatter of every robot's positions.
func PositionsChart(w io.Writer, l Labels, tracks []Track, pal Palette) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(l.Title, pal)),
		charts.WithTitleOpts(opts.Title{Title: l.Title, Subtitle: fmt.Sprintf("robots=%d", len(tracks))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: l.X, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: l.Y, NameLocation: "middle", NameGap: 30}),
	)

	for i, t := range tracks {
		data := make([]opts.ScatterData, len(t.Points))
		for j, p := range t.Points {
			data[j] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		}
		scatter.AddSeries(t.Name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.RobotHex(t.Color, i)}),
		)
	}

	return scatter.Render(w)
}
