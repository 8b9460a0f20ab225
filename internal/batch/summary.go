package batch

import (
	"cmp"
	"math"
	"slices"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one group of values.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"stdev"`
}

// summaryJSON mirrors Summary with non-finite statistics (an infinite LDJ)
// written as null.
type summaryJSON struct {
	Count    int      `json:"count"`
	Mean     *float64 `json:"mean"`
	Median   *float64 `json:"median"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Variance *float64 `json:"variance"`
	StdDev   *float64 `json:"stdev"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (s Summary) encodable() summaryJSON {
	return summaryJSON{
		Count:    s.Count,
		Mean:     finite(s.Mean),
		Median:   finite(s.Median),
		Min:      finite(s.Min),
		Max:      finite(s.Max),
		Variance: finite(s.Variance),
		StdDev:   finite(s.StdDev),
	}
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.encodable())
}

// Summarize computes the descriptive statistics of values. Variance and
// standard deviation use the n-1 denominator and are zero for fewer than two
// values. An empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Count:  n,
		Mean:   stat.Mean(values, nil),
		Median: median(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
	if n > 1 {
		s.Variance = stat.Variance(values, nil)
		s.StdDev = math.Sqrt(s.Variance)
	}
	return s
}

// median averages the two middle values of an even-sized input.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// KeyedSummary is the summary of one group.
type KeyedSummary[K cmp.Ordered] struct {
	Key K `json:"key"`
	Summary
}

func (k KeyedSummary[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key K `json:"key"`
		summaryJSON
	}{k.Key, k.Summary.encodable()})
}

// Summaries summarizes every group of metric in ascending key order.
func (g *Grouped[K]) Summaries(metric string) []KeyedSummary[K] {
	keys := g.Keys(metric)
	out := make([]KeyedSummary[K], len(keys))
	for i, k := range keys {
		out[i] = KeyedSummary[K]{Key: k, Summary: Summarize(g.Values(metric, k))}
	}
	return out
}
