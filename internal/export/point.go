package export

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/san-kum/robometrics/internal/trace"
)

// Point decodes a planar coordinate written as [x, y], [x, y, ...] or a
// singleton-wrapped [[x, y]].
type Point struct {
	X, Y float64
}

func (p Point) Vec2() trace.Vec2 { return trace.Vec2{X: p.X, Y: p.Y} }

func (p *Point) UnmarshalJSON(data []byte) error {
	var flat []float64
	if err := json.Unmarshal(data, &flat); err == nil {
		if len(flat) < 2 {
			return fmt.Errorf("%w: point %s has fewer than 2 components", trace.ErrMalformedInput, data)
		}
		p.X, p.Y = flat[0], flat[1]
		return nil
	}

	var nested []json.RawMessage
	if err := json.Unmarshal(data, &nested); err != nil || len(nested) != 1 {
		return fmt.Errorf("%w: point %s", trace.ErrMalformedInput, data)
	}
	return p.UnmarshalJSON(nested[0])
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{p.X, p.Y})
}
