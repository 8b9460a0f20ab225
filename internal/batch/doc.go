// Package batch folds per-file metrics from many simulation exports into
// groups keyed by an experiment parameter encoded in the filename.
//
// Extraction runs on a bounded worker pool; grouping is single-threaded and
// follows input file order, so the values of every group come out in the same
// order no matter how the workers were scheduled.
package batch
