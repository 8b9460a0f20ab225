package batch

import (
	"fmt"

	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/trace"
)

// DefaultWindowStart is the warm-up cutoff of the junction experiments, in
// seconds. Robots spawned before it are not counted.
const DefaultWindowStart = 6.7

// ObservationWindow bounds the interval over which throughput is measured.
type ObservationWindow struct {
	Start float64 `yaml:"start" json:"start"`
	// Horizon closes the window. Zero means the run makespan.
	Horizon float64 `yaml:"horizon" json:"horizon"`
}

func DefaultWindow() ObservationWindow {
	return ObservationWindow{Start: DefaultWindowStart}
}

// Duration returns the window length for a run with the given makespan.
func (w ObservationWindow) Duration(makespan float64) float64 {
	end := makespan
	if w.Horizon > 0 {
		end = w.Horizon
	}
	return end - w.Start
}

// Contains reports whether a robot starting at t is counted.
func (w ObservationWindow) Contains(t float64) bool {
	if t <= w.Start {
		return false
	}
	return w.Horizon <= 0 || t <= w.Horizon
}

// Throughput returns reached robots per second over window seconds, written
// as the reciprocal of the mean time per robot. No robot reached gives zero.
func Throughput(window float64, reached int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("%w: observation window of %.3fs", trace.ErrMalformedInput, window)
	}
	if reached == 0 {
		return 0, nil
	}
	return 1 / (window / float64(reached)), nil
}

// RunThroughput counts the robots of run that started inside the window and
// reached any goal area, and returns their throughput.
func RunThroughput(run *export.Run, w ObservationWindow) (float64, error) {
	reached := 0
	for _, robot := range run.SortedRobots() {
		plan, err := robot.Plan()
		if err != nil {
			return 0, run.Wrap(robot.ID, err)
		}
		if !w.Contains(plan.StartedAt) {
			continue
		}
		if run.ReachedGoal(robot.ID) {
			reached++
		}
	}

	tp, err := Throughput(w.Duration(run.MakespanSeconds()), reached)
	if err != nil {
		return 0, run.Wrap("", err)
	}
	return tp, nil
}
