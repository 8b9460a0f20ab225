package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/san-kum/robometrics/internal/batch"
	"github.com/san-kum/robometrics/internal/config"
	"github.com/san-kum/robometrics/internal/render"
	"github.com/san-kum/robometrics/internal/report"
)

// discover finds the files of a scenario, falling back to its built-in glob
// and key pattern when the configuration names none.
func discover(dir, glob, keyExpr string) ([]string, *batch.KeyPattern, error) {
	pattern, err := batch.NewKeyPattern(keyExpr)
	if err != nil {
		return nil, nil, err
	}
	files, err := batch.Discover(dir, glob)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no files matching %s in %s", glob, dir)
	}
	log.Info().
		Str("evt.name", "batch.discover").
		Str("dir", dir).
		Int("files", len(files)).
		Msg("found exports")
	return files, pattern, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func runCircle(cmd *cobra.Command, args []string) error {
	files, pattern, err := discover(args[0],
		orDefault(cfg.Scenario.Glob, config.CircleGlob),
		orDefault(cfg.Scenario.KeyPattern, config.CircleKeyPattern))
	if err != nil {
		return err
	}

	g, err := batch.Circle(cmd.Context(), files, pattern, batchOptions())
	if err != nil {
		return err
	}

	for _, metric := range g.Names() {
		if err := report.PrintSummaries(os.Stdout, metric, g.Summaries(metric)); err != nil {
			return err
		}
		fmt.Println()
	}

	w := writer()
	if err := report.WriteSummary(w, "circle_summary", report.NewSummaryFile("circle", g)); err != nil {
		return err
	}
	log.Info().Str("file", w.Path("circle_summary.json")).Msg("summary written")

	return circlePlots(w, g)
}

func circlePlots(w *report.Writer, g *batch.Grouped[int]) error {
	pal := palette()
	makespans := g.Summaries(batch.MetricMakespan)
	series := render.Series{
		Name: "mean makespan",
		X:    lo.Map(makespans, func(s batch.KeyedSummary[int], _ int) float64 { return float64(s.Key) }),
		Y:    lo.Map(makespans, func(s batch.KeyedSummary[int], _ int) float64 { return s.Mean }),
	}
	makespanLabels := render.Labels{Title: "makespan", X: "robots", Y: "seconds"}

	if wantFormat("svg") {
		boxes := []struct {
			metric, title, unit string
		}{
			{batch.MetricDistance, "distance travelled", "distance"},
			{batch.MetricLDJ, "log dimensionless jerk", "ldj"},
		}
		for _, b := range boxes {
			groups := lo.Map(g.Keys(b.metric), func(k int, _ int) render.Group {
				return render.Group{Label: strconv.Itoa(k), Values: g.Values(b.metric, k)}
			})
			path := w.Path("circle_" + b.metric + ".svg")
			if err := render.BoxPlot(path, render.Labels{Title: b.title, X: "robots", Y: b.unit}, groups, pal); err != nil {
				return err
			}
			log.Info().Str("file", path).Msg("plot written")
		}

		path := w.Path("circle_makespan.svg")
		if err := render.LinePlot(path, makespanLabels, []render.Series{series}, false, pal); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("plot written")
	}

	if wantFormat("html") {
		path := w.Path("circle_makespan.html")
		if err := writeHTML(path, func(f *os.File) error {
			return render.LineChart(f, makespanLabels, []render.Series{series}, pal)
		}); err != nil {
			return err
		}
	}

	if wantFormat("ascii") {
		fmt.Println(render.ASCIIPlot(series.Y, "mean makespan by robot count", 60, 12))
	}
	return nil
}

func runJunction(cmd *cobra.Command, args []string) error {
	files, pattern, err := discover(args[0],
		orDefault(cfg.Scenario.Glob, config.JunctionGlob),
		orDefault(cfg.Scenario.KeyPattern, config.JunctionKeyPattern))
	if err != nil {
		return err
	}

	g, err := batch.Junction(cmd.Context(), files, pattern, window(), batchOptions())
	if err != nil {
		return err
	}

	if err := report.PrintSummaries(os.Stdout, batch.MetricThroughput, g.Summaries(batch.MetricThroughput)); err != nil {
		return err
	}

	series := batch.FlowSeries(g)
	sf := report.NewSummaryFile("junction", g)
	sf.Series = series

	w := writer()
	if err := report.WriteSummary(w, "junction_summary", sf); err != nil {
		return err
	}
	if err := w.WriteSeries("junction_flow", "qin", "qout", series); err != nil {
		return err
	}
	log.Info().Str("file", w.Path("junction_summary.json")).Msg("summary written")

	xs := lo.Map(series, func(p batch.Point, _ int) float64 { return p.X })
	ys := lo.Map(series, func(p batch.Point, _ int) float64 { return p.Y })

	if wantFormat("svg") {
		path := w.Path("junction_flow.svg")
		labels := render.Labels{Title: "junction throughput", X: "qin (robots/s)", Y: "qout (robots/s)"}
		if err := render.LinePlot(path, labels, []render.Series{{Name: "qout", X: xs, Y: ys}}, true, palette()); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("plot written")
	}
	if wantFormat("html") {
		path := w.Path("junction_flow.html")
		labels := render.Labels{Title: "junction throughput", X: "qin (robots/s)", Y: "qout (robots/s)"}
		series := []render.Series{{Name: "qout", X: xs, Y: ys}, {Name: "y = x", X: xs, Y: xs}}
		if err := writeHTML(path, func(f *os.File) error {
			return render.LineChart(f, labels, series, palette())
		}); err != nil {
			return err
		}
	}
	if wantFormat("ascii") {
		fmt.Println()
		fmt.Println(render.ASCIIPlot(ys, "qout by qin", 60, 12))
	}
	return nil
}
