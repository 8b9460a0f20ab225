package export

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/robometrics/internal/trace"
)

// Robot is the recorded state of one robot over a run.
type Robot struct {
	ID         string          `json:"-"`
	Color      string          `json:"color"`
	Radius     float64         `json:"radius"`
	Positions  []Point         `json:"positions"`
	Velocities json.RawMessage `json:"velocities"`
	Mission    *Mission        `json:"mission"`
	// Route is the older name of Mission.
	Route *Mission `json:"route"`
}

// Mission is the robot's assigned route and its timing.
type Mission struct {
	StartedAt  float64  `json:"started_at"`
	FinishedAt *float64 `json:"finished_at"`
	Duration   float64  `json:"duration"`
	Routes     []Route  `json:"routes"`
	Waypoints  []Point  `json:"waypoints"`
}

type Route struct {
	Waypoints []Point `json:"waypoints"`
}

// VelocitySchema identifies how a robot's velocities are encoded.
type VelocitySchema int

const (
	SchemaEmpty VelocitySchema = iota
	// SchemaFlat is a list of [vx, vy] pairs without timestamps.
	SchemaFlat
	// SchemaTimestamped is a list of {timestamp, velocity: [x, y, z]} objects.
	SchemaTimestamped
)

func (s VelocitySchema) String() string {
	switch s {
	case SchemaFlat:
		return "flat"
	case SchemaTimestamped:
		return "timestamped"
	default:
		return "empty"
	}
}

// Plan returns the mission, falling back to the legacy route key.
func (r *Robot) Plan() (*Mission, error) {
	if r.Mission != nil {
		return r.Mission, nil
	}
	if r.Route != nil {
		return r.Route, nil
	}
	return nil, fmt.Errorf("%w: robot has neither mission nor route", trace.ErrMalformedInput)
}

// End returns the finish time, or start plus duration while unfinished.
func (m *Mission) End() float64 {
	if m.FinishedAt != nil {
		return *m.FinishedAt
	}
	return m.StartedAt + m.Duration
}

// Polyline concatenates the waypoints of every route of the mission.
func (m *Mission) Polyline() trace.Polyline {
	var out trace.Polyline
	for _, route := range m.Routes {
		for _, wp := range route.Waypoints {
			out = append(out, wp.Vec2())
		}
	}
	for _, wp := range m.Waypoints {
		out = append(out, wp.Vec2())
	}
	return out
}

// Path returns the recorded positions.
func (r *Robot) Path() []trace.Vec2 {
	out := make([]trace.Vec2, len(r.Positions))
	for i, p := range r.Positions {
		out[i] = p.Vec2()
	}
	return out
}

// VelocitySchema detects the velocity encoding used by this robot.
func (r *Robot) VelocitySchema() (VelocitySchema, error) {
	raw := gjson.ParseBytes(r.Velocities)
	if len(r.Velocities) == 0 || raw.Type == gjson.Null {
		return SchemaEmpty, nil
	}
	if !raw.IsArray() {
		return SchemaEmpty, fmt.Errorf("%w: velocities is not a list", trace.ErrMalformedInput)
	}

	first := raw.Get("0")
	switch {
	case !first.Exists():
		return SchemaEmpty, nil
	case first.IsObject() && first.Get("timestamp").Exists():
		return SchemaTimestamped, nil
	case first.IsArray():
		return SchemaFlat, nil
	}
	return SchemaEmpty, fmt.Errorf("%w: unrecognised velocity sample %s", trace.ErrMalformedInput, first.Raw)
}

type timedVelocity struct {
	Timestamp float64   `json:"timestamp"`
	Velocity  []float64 `json:"velocity"`
}

// Velocity normalizes the robot's velocities to a timestamped planar trace.
//
// Timestamped samples keep their time; 3D velocities keep the x and z
// components, the ground plane of the engine. Flat samples carry no time, so
// they are spread evenly over the mission interval, or indexed 0..n-1 when the
// robot has no mission.
func (r *Robot) Velocity() (trace.VelocityTrace, error) {
	schema, err := r.VelocitySchema()
	if err != nil {
		return trace.VelocityTrace{}, err
	}

	switch schema {
	case SchemaTimestamped:
		var samples []timedVelocity
		if err := json.Unmarshal(r.Velocities, &samples); err != nil {
			return trace.VelocityTrace{}, fmt.Errorf("%w: %v", trace.ErrMalformedInput, err)
		}
		tr := trace.VelocityTrace{
			Times:      make([]float64, len(samples)),
			Velocities: make([]trace.Vec2, len(samples)),
		}
		for i, s := range samples {
			v, err := planar(s.Velocity)
			if err != nil {
				return trace.VelocityTrace{}, fmt.Errorf("sample %d: %w", i, err)
			}
			tr.Times[i], tr.Velocities[i] = s.Timestamp, v
		}
		return tr, nil

	case SchemaFlat:
		var samples [][]float64
		if err := json.Unmarshal(r.Velocities, &samples); err != nil {
			return trace.VelocityTrace{}, fmt.Errorf("%w: %v", trace.ErrMalformedInput, err)
		}
		tr := trace.VelocityTrace{
			Times:      r.sampleTimes(len(samples)),
			Velocities: make([]trace.Vec2, len(samples)),
		}
		for i, s := range samples {
			if len(s) < 2 {
				return trace.VelocityTrace{}, fmt.Errorf("%w: sample %d has %d components", trace.ErrMalformedInput, i, len(s))
			}
			tr.Velocities[i] = trace.Vec2{X: s[0], Y: s[1]}
		}
		return tr, nil
	}

	return trace.VelocityTrace{}, nil
}

func (r *Robot) sampleTimes(n int) []float64 {
	times := make([]float64, n)
	if n == 0 {
		return times
	}
	if plan, err := r.Plan(); err == nil && n >= 2 && plan.End() > plan.StartedAt {
		return floats.Span(times, plan.StartedAt, plan.End())
	}
	for i := range times {
		times[i] = float64(i)
	}
	return times
}

func planar(v []float64) (trace.Vec2, error) {
	switch len(v) {
	case 2:
		return trace.Vec2{X: v[0], Y: v[1]}, nil
	case 3:
		return trace.Vec2{X: v[0], Y: v[2]}, nil
	}
	return trace.Vec2{}, fmt.Errorf("%w: velocity has %d components", trace.ErrMalformedInput, len(v))
}
