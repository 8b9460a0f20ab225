package trace

import (
	"fmt"
	"math"
)

// Vec2 is a planar vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Norm() }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }

// VelocityTrace holds the velocity samples of one robot over one run.
type VelocityTrace struct {
	Times      []float64
	Velocities []Vec2
}

// Validate checks the preconditions every derivative-based metric relies on:
// at least two samples, paired lengths and strictly increasing time.
func (tr VelocityTrace) Validate() error {
	if len(tr.Times) != len(tr.Velocities) {
		return fmt.Errorf("%w: %d timestamps, %d velocities", ErrDimensionMismatch, len(tr.Times), len(tr.Velocities))
	}
	if len(tr.Times) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrDegenerateTrajectory, len(tr.Times))
	}
	for i := 1; i < len(tr.Times); i++ {
		if !(tr.Times[i] > tr.Times[i-1]) {
			return fmt.Errorf("%w: timestamp %d (%.6f) not after %.6f", ErrDegenerateTrajectory, i, tr.Times[i], tr.Times[i-1])
		}
	}
	return nil
}

// Speeds returns the magnitude of every velocity sample.
func (tr VelocityTrace) Speeds() []float64 {
	out := make([]float64, len(tr.Velocities))
	for i, v := range tr.Velocities {
		out[i] = v.Norm()
	}
	return out
}

// Segment is a directed line segment between two waypoints.
type Segment struct {
	Start, End Vec2
}

// Polyline is an ordered reference path of waypoints.
type Polyline []Vec2

// Segments returns the consecutive waypoint pairs of the polyline.
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segs = append(segs, Segment{Start: p[i-1], End: p[i]})
	}
	return segs
}

// Validate rejects polylines with fewer than two waypoints or zero-length segments.
func (p Polyline) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: polyline needs at least 2 waypoints, got %d", ErrDegenerateTrajectory, len(p))
	}
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1] {
			return fmt.Errorf("%w: zero-length segment at waypoint %d %s", ErrDegenerateTrajectory, i, p[i])
		}
	}
	return nil
}
