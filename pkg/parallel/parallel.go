// Package parallel fans independent per-record work out over a bounded set
// of goroutines.
//
// Map assigns every index in [0, n) to exactly one call of the worker
// function and stores its result in slot i of a pre-sized slice, so the
// output order always matches the input order regardless of scheduling.
// Workers must not share mutable state; the first error cancels the batch
// and no partial result is returned.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of consecutive indices a worker claims at once
const DefaultChunkSize = 16

// Func computes the result for record i
type Func func(ctx context.Context, i int) (int64, error)

type options struct {
	workers   int
	chunkSize int
}

// Option configures Map
type Option func(*options)

// WithWorkers bounds the number of concurrent workers (<= 0 means NumCPU)
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets how many consecutive indices a worker handles per task
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// Map calls fn for every index in [0, n) and returns the results in index
// order. It returns the first error reported by fn, or ctx's error if the
// context is cancelled before all chunks are scheduled.
func Map(ctx context.Context, n int, fn Func, opts ...Option) ([]int64, error) {
	o := options{workers: runtime.NumCPU(), chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]int64, n)
	if n == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for start := 0; start < n; start += o.chunkSize {
		if gctx.Err() != nil {
			break
		}
		start := start
		end := min(start+o.chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := fn(gctx, i)
				if err != nil {
					return err
				}
				results[i] = v
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Sum adds up values
func Sum(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

// MapSum runs Map and reduces the results with Sum
func MapSum(ctx context.Context, n int, fn Func, opts ...Option) (int64, error) {
	results, err := Map(ctx, n, fn, opts...)
	if err != nil {
		return 0, err
	}
	return Sum(results), nil
}
