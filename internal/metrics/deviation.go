package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/robometrics/internal/trace"
)

// DefaultFallbackDistance is the distance above which the closest projection
// is searched over every segment instead of only the angle-admitted ones.
const DefaultFallbackDistance = 10.0

// Deviation is the result of projecting a position trace onto a polyline.
type Deviation struct {
	Projections []trace.Vec2
	Distances   []float64
	// RMSE is sqrt(mean(distance)): the root of the mean distance, not of the
	// mean squared distance.
	RMSE float64
}

// PathDeviation projects observed positions onto a reference polyline.
// The zero value uses DefaultFallbackDistance.
type PathDeviation struct {
	FallbackDistance float64
}

func NewPathDeviation(fallback float64) PathDeviation {
	return PathDeviation{FallbackDistance: fallback}
}

// PerpendicularDeviation is PathDeviation{}.Compute.
func PerpendicularDeviation(positions []trace.Vec2, waypoints trace.Polyline) (*Deviation, error) {
	return PathDeviation{}.Compute(positions, waypoints)
}

func (d PathDeviation) Compute(positions []trace.Vec2, waypoints trace.Polyline) (*Deviation, error) {
	if err := waypoints.Validate(); err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no positions to project", trace.ErrDegenerateTrajectory)
	}

	segs := waypoints.Segments()
	out := &Deviation{
		Projections: make([]trace.Vec2, len(positions)),
		Distances:   make([]float64, len(positions)),
	}

	sum := 0.0
	for i, p := range positions {
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: non-finite position at sample %d", trace.ErrMalformedInput, i)
		}
		proj := d.ClosestProjection(p, segs)
		out.Projections[i] = proj
		out.Distances[i] = p.Dist(proj)
		sum += out.Distances[i]
	}
	out.RMSE = math.Sqrt(sum / float64(len(positions)))

	return out, nil
}

// ClosestProjection returns the projection of p onto the nearest candidate
// segment line. Candidates are the segments whose span admits p; when none do,
// or the nearest admitted projection is farther than the fallback distance,
// every segment is considered. Ties keep the first segment.
func (d PathDeviation) ClosestProjection(p trace.Vec2, segs []trace.Segment) trace.Vec2 {
	threshold := d.FallbackDistance
	if threshold <= 0 {
		threshold = DefaultFallbackDistance
	}

	candidates := make([]trace.Segment, 0, len(segs))
	for _, s := range segs {
		if admits(s, p) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		candidates = segs
	}

	proj, dist := nearestProjection(p, candidates)
	if dist > threshold {
		proj, _ = nearestProjection(p, segs)
	}
	return proj
}

// ProjectOntoLine projects p onto the infinite line through the segment.
func ProjectOntoLine(p trace.Vec2, s trace.Segment) trace.Vec2 {
	v := s.End.Sub(s.Start)
	return s.Start.Add(v.Scale(p.Sub(s.Start).Dot(v) / v.Dot(v)))
}

// admits reports whether p lies between the segment's endpoints, judged by the
// angle between p-start and p-end. Angles are atan2(x, y).
func admits(s trace.Segment, p trace.Vec2) bool {
	v1 := p.Sub(s.Start)
	v2 := p.Sub(s.End)
	return math.Abs(math.Atan2(v1.X, v1.Y)-math.Atan2(v2.X, v2.Y)) >= math.Pi/2
}

func nearestProjection(p trace.Vec2, segs []trace.Segment) (trace.Vec2, float64) {
	best := ProjectOntoLine(p, segs[0])
	bestDist := p.Dist(best)
	for _, s := range segs[1:] {
		proj := ProjectOntoLine(p, s)
		if dist := p.Dist(proj); dist < bestDist {
			best, bestDist = proj, dist
		}
	}
	return best, bestDist
}
