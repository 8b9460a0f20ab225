package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/robometrics/internal/trace"
)

// Group is one box of a box plot.
type Group struct {
	Label  string
	Values []float64
}

// Series is a named line over x.
type Series struct {
	Name string
	X, Y []float64
}

// Track is the path of one robot.
type Track struct {
	Name   string
	Color  string
	Points []trace.Vec2
	// Waypoints is the planned route, drawn dashed when present.
	Waypoints []trace.Vec2
}

// Labels of a figure.
type Labels struct {
	Title, X, Y string
}

const (
	figureWidth  = 8 * vg.Inch
	figureHeight = 6 * vg.Inch
)

func newPlot(l Labels, pal Palette) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y

	bg, fg := ParseHex(pal.Background), ParseHex(pal.Foreground)
	p.BackgroundColor = bg
	p.Title.TextStyle.Color = fg
	p.Legend.TextStyle.Color = fg
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = fg
		ax.Label.TextStyle.Color = fg
		ax.Tick.Label.Color = fg
		ax.Tick.Color = fg
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = ParseHex(pal.Grid)
	grid.Horizontal.Color = ParseHex(pal.Grid)
	p.Add(grid)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

func xys(points []trace.Vec2) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, pt := range points {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}

// finiteValues returns values without NaN and infinities, and how many were
// dropped. An LDJ of +Inf cannot be placed on an axis.
func finiteValues(values []float64) ([]float64, int) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out, len(values) - len(out)
}

// finitePoints pairs x and y, skipping pairs with a non-finite coordinate.
func finitePoints(x, y []float64) (plotter.XYs, int) {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts, len(x) - len(pts)
}

func warnDropped(title, name string, dropped int) {
	if dropped == 0 {
		return
	}
	log.Warn().
		Str("evt.name", "render.nonfinite").
		Str("figure", title).
		Str("series", name).
		Int("dropped", dropped).
		Msg("non-finite values left out of the figure")
}

// BoxPlot draws one box per group, in order. Non-finite values are left out,
// and so are groups left empty.
func BoxPlot(path string, l Labels, groups []Group, pal Palette) error {
	p := newPlot(l, pal)

	var names []string
	for _, g := range groups {
		values, dropped := finiteValues(g.Values)
		warnDropped(l.Title, g.Label, dropped)
		if len(values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(len(names)), plotter.Values(values))
		if err != nil {
			return fmt.Errorf("group %s: %w", g.Label, err)
		}
		box.FillColor = pal.Color(len(names))
		box.BoxStyle.Color = ParseHex(pal.Foreground)
		box.WhiskerStyle.Color = ParseHex(pal.Foreground)
		p.Add(box)
		names = append(names, g.Label)
	}
	if len(names) == 0 {
		return fmt.Errorf("box plot %q: no values", l.Title)
	}
	p.NominalX(names...)

	return save(p, figureWidth, figureHeight, path)
}

// LinePlot draws every series with markers, skipping non-finite points.
// identity adds a dashed y = x reference.
func LinePlot(path string, l Labels, series []Series, identity bool, pal Palette) error {
	p := newPlot(l, pal)

	if identity {
		ref := plotter.NewFunction(func(x float64) float64 { return x })
		ref.Color = ParseHex(pal.Grid)
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(ref)
		p.Legend.Add("y = x", ref)
	}

	for i, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %s: %w: %d x, %d y", s.Name, trace.ErrDimensionMismatch, len(s.X), len(s.Y))
		}
		pts, dropped := finitePoints(s.X, s.Y)
		warnDropped(l.Title, s.Name, dropped)
		if len(pts) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		line.Color = pal.Color(i)
		line.Width = vg.Points(1.5)
		points.Color = pal.Color(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		if s.Name != "" {
			p.Legend.Add(s.Name, line, points)
		}
	}

	return save(p, figureWidth, figureHeight, path)
}

// DeviationPlot draws a robot's planned route, its recorded positions and the
// segment from every position to its projection on the route.
func DeviationPlot(path string, l Labels, waypoints, positions, projections []trace.Vec2, pal Palette) error {
	if len(positions) != len(projections) {
		return fmt.Errorf("%w: %d positions, %d projections", trace.ErrDimensionMismatch, len(positions), len(projections))
	}
	p := newPlot(l, pal)

	for i := range positions {
		seg, err := plotter.NewLine(xys([]trace.Vec2{positions[i], projections[i]}))
		if err != nil {
			return err
		}
		seg.Color = ParseHex(pal.Grid)
		seg.Width = vg.Points(0.5)
		p.Add(seg)
	}

	route, marks, err := plotter.NewLinePoints(xys(waypoints))
	if err != nil {
		return fmt.Errorf("waypoints: %w", err)
	}
	route.Color = pal.Color(0)
	route.Width = vg.Points(1.5)
	marks.Color = pal.Color(0)
	marks.Shape = draw.BoxGlyph{}
	p.Add(route, marks)
	p.Legend.Add("route", route, marks)

	recorded, err := plotter.NewScatter(xys(positions))
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}
	recorded.Color = pal.Color(1)
	recorded.Radius = vg.Points(1.5)
	recorded.Shape = draw.CircleGlyph{}
	p.Add(recorded)
	p.Legend.Add("positions", recorded)

	return save(p, figureWidth, figureWidth, path)
}

// PathPlot draws the recorded path of every robot, with its route dashed.
func PathPlot(path string, l Labels, tracks []Track, pal Palette) error {
	p := newPlot(l, pal)

	for i, t := range tracks {
		c := ParseHex(pal.RobotHex(t.Color, i))

		if len(t.Waypoints) > 1 {
			route, err := plotter.NewLine(xys(t.Waypoints))
			if err != nil {
				return fmt.Errorf("robot %s waypoints: %w", t.Name, err)
			}
			route.Color = c
			route.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(route)
		}

		if len(t.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys(t.Points))
		if err != nil {
			return fmt.Errorf("robot %s: %w", t.Name, err)
		}
		line.Color = c
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(t.Name, line)
	}

	return save(p, figureWidth, figureWidth, path)
}
