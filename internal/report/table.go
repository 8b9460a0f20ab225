package report

import (
	"cmp"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/robometrics/internal/batch"
)

// Table is a labelled grid of values, one row per robot.
type Table struct {
	Label   string
	Columns []string
	Rows    []Row
}

type Row struct {
	Label  string
	Values []float64
}

func NewTable(label string, columns ...string) *Table {
	return &Table{Label: label, Columns: columns}
}

func (t *Table) LabelHeader() string {
	if t.Label == "" {
		return "robot"
	}
	return t.Label
}

func (t *Table) Add(label string, values ...float64) {
	t.Rows = append(t.Rows, Row{Label: label, Values: values})
}

// Column returns the values of the i-th column.
func (t *Table) Column(i int) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if i < len(r.Values) {
			out = append(out, r.Values[i])
		}
	}
	return out
}

// Print renders t with aligned columns.
func (t *Table) Print(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(t.LabelHeader()), strings.ToUpper(strings.Join(t.Columns, "\t")))
	for _, r := range t.Rows {
		cells := make([]string, len(r.Values))
		for i, v := range r.Values {
			cells[i] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(w, "%s\t%s\n", r.Label, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

// PrintSummary renders a single summary as name/value lines.
func PrintSummary(out io.Writer, title string, s batch.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "  count\t%d\n", s.Count)
	fmt.Fprintf(w, "  mean\t%.4f\n", s.Mean)
	fmt.Fprintf(w, "  median\t%.4f\n", s.Median)
	fmt.Fprintf(w, "  min\t%.4f\n", s.Min)
	fmt.Fprintf(w, "  max\t%.4f\n", s.Max)
	fmt.Fprintf(w, "  variance\t%.4f\n", s.Variance)
	fmt.Fprintf(w, "  stdev\t%.4f\n", s.StdDev)
	return w.Flush()
}

// PrintSummaries renders one row per key of a metric.
func PrintSummaries[K cmp.Ordered](out io.Writer, metric string, sums []batch.KeyedSummary[K]) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCOUNT\tMEAN\tMEDIAN\tMIN\tMAX\tSTDEV\n", strings.ToUpper(metric))
	for _, s := range sums {
		fmt.Fprintf(w, "%v\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Key, s.Count, s.Mean, s.Median, s.Min, s.Max, s.StdDev)
	}
	return w.Flush()
}
