package metrics

import "github.com/san-kum/robometrics/internal/trace"

// Odometer accumulates the path length of a stream of positions.
type Odometer struct {
	last    trace.Vec2
	total   float64
	samples int
}

func NewOdometer() *Odometer {
	return &Odometer{}
}

func (o *Odometer) Observe(p trace.Vec2) {
	if o.samples > 0 {
		o.total += o.last.Dist(p)
	}
	o.last = p
	o.samples++
}

func (o *Odometer) Value() float64 {
	return o.total
}

// DistanceTravelled sums the lengths between consecutive positions.
func DistanceTravelled(positions []trace.Vec2) float64 {
	o := NewOdometer()
	for _, p := range positions {
		o.Observe(p)
	}
	return o.Value()
}
