// Package tui is a terminal inspector for a single simulation export.
package tui

import (
	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/metrics"
	"github.com/san-kum/robometrics/internal/trace"
)

// RobotStats is what the inspector shows for one robot. A metric that
// could not be computed keeps its error instead of a value.
type RobotStats struct {
	ID       string
	Distance float64
	LDJ      float64
	LDJErr   error
	RMSE     float64
	RMSEErr  error
	Times    []float64
	Speeds   []float64
	Path     []trace.Vec2
	Route    []trace.Vec2
}

// Collect computes the stats of every robot of run in id order.
func Collect(run *export.Run, dev metrics.PathDeviation) []RobotStats {
	robots := run.SortedRobots()
	out := make([]RobotStats, 0, len(robots))
	for _, r := range robots {
		s := RobotStats{
			ID:       r.ID,
			Path:     r.Path(),
			Distance: metrics.DistanceTravelled(r.Path()),
		}

		if tr, err := r.Velocity(); err != nil {
			s.LDJErr = err
		} else {
			s.Times, s.Speeds = tr.Times, tr.Speeds()
			s.LDJ, s.LDJErr = metrics.LDJ(tr.Velocities, tr.Times)
		}

		if plan, err := r.Plan(); err != nil {
			s.RMSEErr = err
		} else {
			s.Route = plan.Polyline()
			if d, err := dev.Compute(s.Path, plan.Polyline()); err != nil {
				s.RMSEErr = err
			} else {
				s.RMSE = d.RMSE
			}
		}

		out = append(out, s)
	}
	return out
}
