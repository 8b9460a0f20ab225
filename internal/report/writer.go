// Package report writes analysis results as JSON, CSV and terminal tables.
package report

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/san-kum/robometrics/internal/batch"
)

type Writer struct {
	baseDir string
}

func New(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

func (w *Writer) Init() error {
	return os.MkdirAll(w.baseDir, 0755)
}

// Path returns where an output called name is written.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

// SummaryFile is the JSON document written for a batch.
type SummaryFile[K cmp.Ordered] struct {
	Scenario string                             `json:"scenario"`
	Files    int                                `json:"files"`
	Skipped  []string                           `json:"skipped,omitempty"`
	Metrics  map[string][]batch.KeyedSummary[K] `json:"metrics"`
	Series   []batch.Point                      `json:"series,omitempty"`
}

// NewSummaryFile summarizes every metric of g.
func NewSummaryFile[K cmp.Ordered](scenario string, g *batch.Grouped[K]) *SummaryFile[K] {
	sf := &SummaryFile[K]{
		Scenario: scenario,
		Files:    g.Files,
		Skipped: lo.Map(g.Skipped, func(s batch.Skipped, _ int) string {
			return s.Path
		}),
		Metrics: make(map[string][]batch.KeyedSummary[K], len(g.Metrics)),
	}
	for _, name := range g.Names() {
		sf.Metrics[name] = g.Summaries(name)
	}
	return sf
}

// WriteSummary writes <name>.json and <name>.csv for sf.
func WriteSummary[K cmp.Ordered](w *Writer, name string, sf *SummaryFile[K]) error {
	if err := w.Init(); err != nil {
		return err
	}
	if err := w.writeJSON(name+".json", sf); err != nil {
		return err
	}

	header := []string{"metric", "key", "count", "mean", "median", "min", "max", "variance", "stdev"}
	metrics := lo.Keys(sf.Metrics)
	slices.Sort(metrics)

	var rows [][]string
	for _, metric := range metrics {
		for _, s := range sf.Metrics[metric] {
			rows = append(rows, []string{
				metric,
				fmt.Sprint(s.Key),
				strconv.Itoa(s.Count),
				formatFloat(s.Mean),
				formatFloat(s.Median),
				formatFloat(s.Min),
				formatFloat(s.Max),
				formatFloat(s.Variance),
				formatFloat(s.StdDev),
			})
		}
	}

	return w.writeCSV(name+".csv", header, rows)
}

// WriteSeries writes an (x, y) series as <name>.csv.
func (w *Writer) WriteSeries(name, xLabel, yLabel string, series []batch.Point) error {
	if err := w.Init(); err != nil {
		return err
	}
	rows := lo.Map(series, func(p batch.Point, _ int) []string {
		return []string{formatFloat(p.X), formatFloat(p.Y)}
	})
	return w.writeCSV(name+".csv", []string{xLabel, yLabel}, rows)
}

// WriteTable writes a per-robot table as <name>.csv.
func (w *Writer) WriteTable(name string, t *Table) error {
	if err := w.Init(); err != nil {
		return err
	}
	header := append([]string{t.LabelHeader()}, t.Columns...)
	rows := lo.Map(t.Rows, func(r Row, _ int) []string {
		return append([]string{r.Label}, lo.Map(r.Values, func(v float64, _ int) string {
			return formatFloat(v)
		})...)
	})
	return w.writeCSV(name+".csv", header, rows)
}

// closeInto closes f and reports its error unless *err is already set.
func closeInto(f *os.File, err *error) {
	if cerr := f.Close(); *err == nil {
		*err = cerr
	}
}

func (w *Writer) writeJSON(name string, v any) (err error) {
	f, err := os.Create(w.Path(name))
	if err != nil {
		return err
	}
	defer closeInto(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) (err error) {
	f, err := os.Create(w.Path(name))
	if err != nil {
		return err
	}
	defer closeInto(f, &err)

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
