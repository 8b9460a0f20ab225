package batch_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/robometrics/internal/batch"
)

var errBroken = errors.New("broken export")

// fixture serves canned keys and samples by file name.
type fixture struct {
	keys    map[string]int
	samples map[string][]float64
	delay   map[string]time.Duration
	fail    map[string]bool
}

func (f fixture) keyOf(path string) (int, error) {
	k, ok := f.keys[path]
	if !ok {
		return 0, fmt.Errorf("no key for %s", path)
	}
	return k, nil
}

func (f fixture) extract(ctx context.Context, path string) (batch.Sample, error) {
	if d := f.delay[path]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.fail[path] {
		return nil, errBroken
	}
	return batch.Sample{"value": f.samples[path]}, nil
}

var _ = Describe("Aggregate", func() {
	var f fixture

	BeforeEach(func() {
		f = fixture{
			keys:    map[string]int{"a": 1, "b": 1, "c": 2},
			samples: map[string][]float64{"a": {2}, "b": {4}, "c": {10}},
			delay:   map[string]time.Duration{},
			fail:    map[string]bool{},
		}
	})

	It("groups values by key and summarizes each group", func() {
		g, err := batch.Aggregate[int](context.Background(), []string{"a", "b", "c"}, f.keyOf, f.extract, batch.Options{Workers: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Files).To(Equal(3))
		Expect(g.Keys("value")).To(Equal([]int{1, 2}))
		Expect(g.Values("value", 1)).To(Equal([]float64{2, 4}))
		Expect(g.Values("value", 2)).To(Equal([]float64{10}))

		sums := g.Summaries("value")
		Expect(sums).To(HaveLen(2))
		Expect(sums[0].Key).To(Equal(1))
		Expect(sums[0].Count).To(Equal(2))
		Expect(sums[0].Mean).To(BeNumerically("~", 3, 1e-12))
		Expect(sums[0].Median).To(BeNumerically("~", 3, 1e-12))
		Expect(sums[0].Min).To(Equal(2.0))
		Expect(sums[0].Max).To(Equal(4.0))
		Expect(sums[1].Count).To(Equal(1))
		Expect(sums[1].Variance).To(Equal(0.0))
	})

	It("keeps file order regardless of completion order", func() {
		f.keys = map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}
		f.samples = map[string][]float64{"a": {1}, "b": {2}, "c": {3}, "d": {4}}
		f.delay = map[string]time.Duration{"a": 30 * time.Millisecond, "b": 20 * time.Millisecond, "c": 10 * time.Millisecond}

		g, err := batch.Aggregate[int](context.Background(), []string{"a", "b", "c", "d"}, f.keyOf, f.extract, batch.Options{Workers: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Values("value", 1)).To(Equal([]float64{1, 2, 3, 4}))
	})

	It("aborts the batch on the first failure by default", func() {
		f.fail["b"] = true

		g, err := batch.Aggregate[int](context.Background(), []string{"a", "b", "c"}, f.keyOf, f.extract, batch.Options{Workers: 1})
		Expect(err).To(MatchError(errBroken))
		Expect(g).To(BeNil())
	})

	It("fails on a key that cannot be derived", func() {
		_, err := batch.Aggregate[int](context.Background(), []string{"a", "zzz"}, f.keyOf, f.extract, batch.Options{})
		Expect(err).To(MatchError(ContainSubstring("no key for zzz")))
	})

	It("skips failing files when asked to", func() {
		f.fail["b"] = true

		g, err := batch.Aggregate[int](context.Background(), []string{"a", "b", "c"}, f.keyOf, f.extract, batch.Options{SkipFailures: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Files).To(Equal(2))
		Expect(g.Skipped).To(HaveLen(1))
		Expect(g.Skipped[0].Path).To(Equal("b"))
		Expect(g.Skipped[0].Err).To(MatchError(errBroken))
		Expect(g.Values("value", 1)).To(Equal([]float64{2}))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := batch.Aggregate[int](ctx, []string{"a", "b"}, f.keyOf, f.extract, batch.Options{})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("returns an empty grouping for no files", func() {
		g, err := batch.Aggregate[int](context.Background(), nil, f.keyOf, f.extract, batch.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Files).To(BeZero())
		Expect(g.Names()).To(BeEmpty())
	})
})

var _ = Describe("Summarize", func() {
	It("returns the zero summary for no values", func() {
		Expect(batch.Summarize(nil)).To(Equal(batch.Summary{}))
	})

	It("averages the middle values of an even group", func() {
		s := batch.Summarize([]float64{4, 1, 3, 2})
		Expect(s.Median).To(Equal(2.5))
		Expect(s.Mean).To(Equal(2.5))
		Expect(s.Variance).To(BeNumerically("~", 5.0/3.0, 1e-12))
		Expect(s.StdDev).To(BeNumerically("~", 1.2909944487358056, 1e-12))
	})

	It("does not reorder its input", func() {
		values := []float64{3, 1, 2}
		batch.Summarize(values)
		Expect(values).To(Equal([]float64{3, 1, 2}))
	})
})
