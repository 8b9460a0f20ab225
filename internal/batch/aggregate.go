package batch

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Sample is what one file contributes: metric name to values.
type Sample map[string][]float64

// Extractor computes the sample of one export file.
type Extractor func(ctx context.Context, path string) (Sample, error)

// KeyFunc derives the grouping key of a file from its path.
type KeyFunc[K cmp.Ordered] func(path string) (K, error)

// Options controls how a batch is dispatched.
type Options struct {
	// Workers bounds concurrent extractions. Zero means GOMAXPROCS.
	Workers int
	// SkipFailures drops failing files instead of aborting the batch.
	SkipFailures bool
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Skipped records a file dropped under SkipFailures.
type Skipped struct {
	Path string
	Err  error
}

// Grouped holds, per metric, the values of every key in file order.
type Grouped[K cmp.Ordered] struct {
	Metrics map[string]map[K][]float64
	Files   int
	Skipped []Skipped
}

func newGrouped[K cmp.Ordered]() *Grouped[K] {
	return &Grouped[K]{Metrics: make(map[string]map[K][]float64)}
}

// Add extends the values of metric under key.
func (g *Grouped[K]) Add(metric string, key K, values ...float64) {
	groups, ok := g.Metrics[metric]
	if !ok {
		groups = make(map[K][]float64)
		g.Metrics[metric] = groups
	}
	groups[key] = append(groups[key], values...)
}

// Names returns the metric names in sorted order.
func (g *Grouped[K]) Names() []string {
	names := lo.Keys(g.Metrics)
	slices.Sort(names)
	return names
}

// Keys returns the keys present for metric in ascending order.
func (g *Grouped[K]) Keys(metric string) []K {
	keys := lo.Keys(g.Metrics[metric])
	slices.Sort(keys)
	return keys
}

// Values returns the values of metric under key.
func (g *Grouped[K]) Values(metric string, key K) []float64 {
	return g.Metrics[metric][key]
}

// Aggregate extracts a sample from every file and groups the values by key.
//
// Without SkipFailures the first failure cancels the remaining work and is
// returned. With it, failing files are logged, listed in Skipped and
// contribute nothing.
func Aggregate[K cmp.Ordered](ctx context.Context, files []string, keyOf KeyFunc[K], extract Extractor, opts Options) (*Grouped[K], error) {
	type outcome struct {
		key    K
		sample Sample
		err    error
	}
	outcomes := make([]outcome, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.workers())

	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			start := time.Now()
			key, sample, err := extractOne(egCtx, path, keyOf, extract)
			if err != nil {
				if opts.SkipFailures {
					outcomes[i].err = err
					return nil
				}
				return err
			}

			log.Debug().
				Str("evt.name", "batch.file").
				Str("file", path).
				Str("key", fmt.Sprint(key)).
				Dur("elapsed", time.Since(start)).
				Msg("extracted")

			outcomes[i] = outcome{key: key, sample: sample}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	grouped := newGrouped[K]()
	for i, o := range outcomes {
		if o.err != nil {
			log.Warn().
				Str("evt.name", "batch.skip").
				Str("file", files[i]).
				Err(o.err).
				Msg("skipping file")
			grouped.Skipped = append(grouped.Skipped, Skipped{Path: files[i], Err: o.err})
			continue
		}
		// Sorted so that groups shared by several metrics fill up identically.
		for _, name := range sortedNames(o.sample) {
			grouped.Add(name, o.key, o.sample[name]...)
		}
		grouped.Files++
	}

	log.Info().
		Str("evt.name", "batch.done").
		Int("files", grouped.Files).
		Int("skipped", len(grouped.Skipped)).
		Msg("batch aggregated")

	return grouped, nil
}

func extractOne[K cmp.Ordered](ctx context.Context, path string, keyOf KeyFunc[K], extract Extractor) (K, Sample, error) {
	key, err := keyOf(path)
	if err != nil {
		return key, nil, err
	}
	sample, err := extract(ctx, path)
	if err != nil {
		return key, nil, err
	}
	return key, sample, nil
}

func sortedNames(s Sample) []string {
	names := lo.Keys(s)
	slices.Sort(names)
	return names
}
