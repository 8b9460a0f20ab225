package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/robometrics/internal/trace"
)

// LDJ returns the log dimensionless jerk of a velocity trace.
//
// The trace is treated as uniformly sampled with the mean timestep, and the
// squared jerk is integrated over an evenly spaced axis between the first and
// last timestamp. Larger values are smoother. A trace with motion but no jerk
// yields +Inf; a trace that never moves returns [trace.ErrZeroMotion].
func LDJ(velocities []trace.Vec2, times []float64) (float64, error) {
	tr := trace.VelocityTrace{Times: times, Velocities: velocities}
	if err := tr.Validate(); err != nil {
		return 0, err
	}
	for i, v := range velocities {
		if !v.IsValid() {
			return 0, fmt.Errorf("%w: non-finite velocity at sample %d", trace.ErrMalformedInput, i)
		}
	}

	n := len(times)
	tStart, tFinal := times[0], times[n-1]
	dt := floats.Sum(timeDiffs(times)) / float64(n-1)

	vx := make([]float64, n)
	vy := make([]float64, n)
	for i, v := range velocities {
		vx[i], vy[i] = v.X, v.Y
	}

	jx := Gradient(Gradient(vx, dt), dt)
	jy := Gradient(Gradient(vy, dt), dt)

	squaredJerk := make([]float64, n)
	for i := range squaredJerk {
		squaredJerk[i] = jx[i]*jx[i] + jy[i]*jy[i]
	}

	samples := floats.Span(make([]float64, n), tStart, tFinal)
	integral := integrateSamples(samples, squaredJerk)

	vMax := floats.Max(tr.Speeds())
	if vMax == 0 {
		return 0, trace.ErrZeroMotion
	}

	duration := tFinal - tStart
	return -math.Log(math.Pow(duration, 3) / (vMax * vMax) * integral), nil
}

// Gradient estimates the derivative of uniformly spaced samples: central
// differences in the interior and one-sided differences at both ends.
func Gradient(f []float64, h float64) []float64 {
	n := len(f)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = (f[1] - f[0]) / h
	out[n-1] = (f[n-1] - f[n-2]) / h
	for i := 1; i < n-1; i++ {
		out[i] = (f[i+1] - f[i-1]) / (2 * h)
	}
	return out
}

// integrateSamples applies composite Simpson's rule. Simpson needs three
// points, so a two-sample trace uses the trapezoid rule.
func integrateSamples(x, f []float64) float64 {
	if len(x) < 3 {
		return integrate.Trapezoidal(x, f)
	}
	return integrate.Simpsons(x, f)
}

func timeDiffs(times []float64) []float64 {
	diffs := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		diffs[i-1] = times[i] - times[i-1]
	}
	return diffs
}
