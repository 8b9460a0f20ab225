package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/render"
	"github.com/san-kum/robometrics/internal/trace"
)

func tracks(run *export.Run) []render.Track {
	var out []render.Track
	for _, robot := range run.SortedRobots() {
		t := render.Track{Name: robot.ID, Color: robot.Color, Points: robot.Path()}
		if plan, err := robot.Plan(); err == nil {
			t.Waypoints = plan.Polyline()
		}
		out = append(out, t)
	}
	return out
}

func writeHTML(path string, draw func(f *os.File) error) (err error) {
	if err := writer().Init(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := draw(f); err != nil {
		return err
	}
	log.Info().Str("file", path).Msg("chart written")
	return nil
}

func plotPositions(cmd *cobra.Command, args []string) error {
	run, err := export.Load(args[0])
	if err != nil {
		return err
	}
	tr := tracks(run)
	pal := palette()
	labels := render.Labels{Title: stem(run.Path) + " positions", X: "x", Y: "y"}

	if wantFormat("svg") {
		path := writer().Path(stem(run.Path) + "_positions.svg")
		if err := render.PathPlot(path, labels, tr, pal); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("plot written")
	}
	if wantFormat("html") {
		path := writer().Path(stem(run.Path) + "_positions.html")
		if err := writeHTML(path, func(f *os.File) error { return render.PositionsChart(f, labels, tr, pal) }); err != nil {
			return err
		}
	}
	if wantFormat("ascii") {
		paths := make([][]trace.Vec2, len(tr))
		for i, t := range tr {
			paths[i] = t.Points
		}
		fmt.Print(render.ASCIIPaths(paths, 60, 20))
	}
	return nil
}

func plotVelocities(cmd *cobra.Command, args []string) error {
	run, err := export.Load(args[0])
	if err != nil {
		return err
	}

	var series []render.Series
	for _, robot := range run.SortedRobots() {
		tr, err := robot.Velocity()
		if err != nil {
			return run.Wrap(robot.ID, err)
		}
		series = append(series, render.Series{Name: robot.ID, X: tr.Times, Y: tr.Speeds()})
	}

	pal := palette()
	labels := render.Labels{Title: stem(run.Path) + " speed", X: "time (s)", Y: "speed"}

	if wantFormat("svg") {
		path := writer().Path(stem(run.Path) + "_speed.svg")
		if err := render.LinePlot(path, labels, series, false, pal); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("plot written")
	}
	if wantFormat("html") {
		path := writer().Path(stem(run.Path) + "_speed.html")
		if err := writeHTML(path, func(f *os.File) error { return render.LineChart(f, labels, series, pal) }); err != nil {
			return err
		}
	}
	if wantFormat("ascii") {
		speeds := make([][]float64, len(series))
		for i, s := range series {
			speeds[i] = s.Y
		}
		fmt.Println(render.ASCIIPlotMany(speeds, "speed per robot", 60, 12))
	}
	return nil
}
