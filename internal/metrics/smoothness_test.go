package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/robometrics/internal/trace"
)

func alongX(xs ...float64) []trace.Vec2 {
	out := make([]trace.Vec2, len(xs))
	for i, x := range xs {
		out[i] = trace.Vec2{X: x}
	}
	return out
}

func TestLDJKnownValues(t *testing.T) {
	tests := []struct {
		name       string
		velocities []trace.Vec2
		times      []float64
		expected   float64
	}{
		// a = [1 2 3], j = [1 1 1], J = 2, vmax = 4: -ln(8/16*2) = 0
		{"three samples", alongX(0, 1, 4), []float64{0, 1, 2}, 0},
		// j = [1 1.5 1.5 1], Simpson with end correction gives J = 5.8125
		{"four samples", alongX(0, 1, 4, 9), []float64{0, 1, 2, 3}, -math.Log(27.0 / 81.0 * 5.8125)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LDJ(tt.velocities, tt.times)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("LDJ = %.15f, want %.15f", got, tt.expected)
			}
		})
	}
}

func TestLDJDeterministic(t *testing.T) {
	v := []trace.Vec2{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 3}, {X: -1, Y: 1}, {X: 2, Y: 2}}
	times := []float64{0, 0.5, 1.5, 2.0, 3.0}

	first, err := LDJ(v, times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, _ := LDJ(v, times)
		if math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("run %d: got %v, want bit-identical %v", i, got, first)
		}
	}
}

func TestLDJUsesMeanTimestep(t *testing.T) {
	v := alongX(0, 1, 4)

	uniform, err := LDJ(v, []float64{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	irregular, err := LDJ(v, []float64{0, 0.5, 2})
	if err != nil {
		t.Fatal(err)
	}

	if uniform != irregular {
		t.Errorf("expected irregular spacing to be treated as uniform: %v != %v", irregular, uniform)
	}
}

func TestLDJConstantVelocity(t *testing.T) {
	v := []trace.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}
	times := []float64{0, 0.1, 0.2, 0.3, 0.4}

	got, err := LDJ(v, times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("expected +Inf for zero jerk, got %v", got)
	}
}

func TestLDJTwoSamples(t *testing.T) {
	got, err := LDJ(alongX(1, 3), []float64{0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Linear velocity has no jerk.
	if !math.IsInf(got, 1) {
		t.Errorf("expected +Inf, got %v", got)
	}
}

func TestLDJErrors(t *testing.T) {
	tests := []struct {
		name       string
		velocities []trace.Vec2
		times      []float64
		want       error
	}{
		{"empty", nil, nil, trace.ErrDegenerateTrajectory},
		{"single sample", alongX(1), []float64{0}, trace.ErrDegenerateTrajectory},
		{"length mismatch", alongX(1, 2, 3), []float64{0, 1}, trace.ErrDimensionMismatch},
		{"non-monotonic", alongX(1, 2, 3), []float64{0, 2, 1}, trace.ErrDegenerateTrajectory},
		{"no motion", alongX(0, 0, 0), []float64{0, 1, 2}, trace.ErrZeroMotion},
		{"nan velocity", []trace.Vec2{{X: 1, Y: 0}, {X: math.NaN(), Y: 0}}, []float64{0, 1}, trace.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LDJ(tt.velocities, tt.times)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGradient(t *testing.T) {
	tests := []struct {
		f        []float64
		h        float64
		expected []float64
	}{
		{[]float64{0, 1, 4, 9}, 1, []float64{1, 2, 4, 5}},
		{[]float64{1, 3}, 2, []float64{1, 1}},
		{[]float64{2, 2, 2}, 0.5, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		got := Gradient(tt.f, tt.h)
		if diff := cmp.Diff(tt.expected, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("Gradient(%v) mismatch (-want +got):\n%s", tt.f, diff)
		}
	}
}
