package batch

import (
	"context"
	"fmt"

	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/metrics"
	"github.com/san-kum/robometrics/internal/trace"
)

// Metric names produced by the built-in scenarios.
const (
	MetricDistance   = "distance"
	MetricLDJ        = "ldj"
	MetricMakespan   = "makespan"
	MetricThroughput = "throughput"
)

// CircleSample extracts, from one circle run, the distance travelled and LDJ
// of every robot plus the run makespan.
func CircleSample(_ context.Context, path string) (Sample, error) {
	run, err := export.Load(path)
	if err != nil {
		return nil, err
	}

	robots := run.SortedRobots()
	distances := make([]float64, 0, len(robots))
	ldjs := make([]float64, 0, len(robots))
	for _, robot := range robots {
		distances = append(distances, metrics.DistanceTravelled(robot.Path()))

		tr, err := robot.Velocity()
		if err != nil {
			return nil, run.Wrap(robot.ID, err)
		}
		ldj, err := metrics.LDJ(tr.Velocities, tr.Times)
		if err != nil {
			return nil, run.Wrap(robot.ID, err)
		}
		ldjs = append(ldjs, ldj)
	}

	return Sample{
		MetricDistance: distances,
		MetricLDJ:      ldjs,
		MetricMakespan: {run.MakespanSeconds()},
	}, nil
}

// JunctionSample returns an extractor of the throughput of one junction run.
func JunctionSample(w ObservationWindow) Extractor {
	return func(_ context.Context, path string) (Sample, error) {
		run, err := export.Load(path)
		if err != nil {
			return nil, err
		}
		tp, err := RunThroughput(run, w)
		if err != nil {
			return nil, err
		}
		return Sample{MetricThroughput: {tp}}, nil
	}
}

// Circle aggregates circle runs by robot count. A nil pattern means
// CirclePattern.
func Circle(ctx context.Context, files []string, pattern *KeyPattern, opts Options) (*Grouped[int], error) {
	if pattern == nil {
		pattern = CirclePattern
	}
	return Aggregate[int](ctx, files, pattern.Int, CircleSample, opts)
}

// Junction aggregates junction runs by input flow. A nil pattern means
// JunctionPattern.
func Junction(ctx context.Context, files []string, pattern *KeyPattern, w ObservationWindow, opts Options) (*Grouped[float64], error) {
	if w.Horizon > 0 && w.Horizon <= w.Start {
		return nil, fmt.Errorf("%w: observation window ends at %.3f before it starts at %.3f", trace.ErrMalformedInput, w.Horizon, w.Start)
	}
	if pattern == nil {
		pattern = JunctionPattern
	}
	return Aggregate[float64](ctx, files, pattern.Float, JunctionSample(w), opts)
}

// Point is one (x, y) sample of a derived series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FlowSeries returns the mean throughput per input flow, in ascending order,
// anchored at the origin.
func FlowSeries(g *Grouped[float64]) []Point {
	series := []Point{{X: 0, Y: 0}}
	for _, s := range g.Summaries(MetricThroughput) {
		series = append(series, Point{X: s.Key, Y: s.Mean})
	}
	return series
}
