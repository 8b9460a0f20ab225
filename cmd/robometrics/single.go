package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/robometrics/internal/batch"
	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/metrics"
	"github.com/san-kum/robometrics/internal/render"
	"github.com/san-kum/robometrics/internal/report"
)

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func printTable(name string, run *export.Run, tbl *report.Table, column int) error {
	if err := tbl.Print(os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	if err := report.PrintSummary(os.Stdout, tbl.Columns[column], batch.Summarize(tbl.Column(column))); err != nil {
		return err
	}
	if !saveTable {
		return nil
	}
	out := stem(run.Path) + "_" + name
	if err := writer().WriteTable(out, tbl); err != nil {
		return err
	}
	log.Info().Str("file", writer().Path(out+".csv")).Msg("table written")
	return nil
}

func runLDJ(cmd *cobra.Command, args []string) error {
	run, err := export.Load(args[0])
	if err != nil {
		return err
	}

	tbl := report.NewTable("robot", "ldj")
	for _, robot := range run.SortedRobots() {
		tr, err := robot.Velocity()
		if err != nil {
			return run.Wrap(robot.ID, err)
		}
		ldj, err := metrics.LDJ(tr.Velocities, tr.Times)
		if err != nil {
			return run.Wrap(robot.ID, err)
		}
		tbl.Add(robot.ID, ldj)
	}

	return printTable("ldj", run, tbl, 0)
}

func runDistance(cmd *cobra.Command, args []string) error {
	run, err := export.Load(args[0])
	if err != nil {
		return err
	}

	tbl := report.NewTable("robot", "distance")
	for _, robot := range run.SortedRobots() {
		d := math.Max(metrics.DistanceTravelled(robot.Path()), bestPossible)
		tbl.Add(robot.ID, d)
	}

	return printTable("distance", run, tbl, 0)
}

func runDeviation(cmd *cobra.Command, args []string) error {
	run, err := export.Load(args[0])
	if err != nil {
		return err
	}

	dev := deviation()
	pal := palette()
	tbl := report.NewTable("robot", "rmse")
	for _, robot := range run.SortedRobots() {
		plan, err := robot.Plan()
		if err != nil {
			return run.Wrap(robot.ID, err)
		}
		route := plan.Polyline()
		positions := robot.Path()

		d, err := dev.Compute(positions, route)
		if err != nil {
			return run.Wrap(robot.ID, err)
		}
		tbl.Add(robot.ID, d.RMSE)

		if plotFlag {
			path := writer().Path(fmt.Sprintf("%s_%s_deviation.svg", stem(run.Path), robot.ID))
			labels := render.Labels{Title: fmt.Sprintf("%s deviation (rmse %.3f)", robot.ID, d.RMSE), X: "x", Y: "y"}
			if err := render.DeviationPlot(path, labels, route, positions, d.Projections, pal); err != nil {
				return run.Wrap(robot.ID, err)
			}
			log.Info().Str("file", path).Msg("plot written")
		}
	}

	return printTable("deviation", run, tbl, 0)
}
