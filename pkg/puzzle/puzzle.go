// Package puzzle defines the contract between the batch runner and the
// per-puzzle solvers.
package puzzle

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/lines"
	"github.com/ajitpratap0/linescan/pkg/parallel"
)

// Input is everything a solver needs for one batch. Data and Lines are
// shared read-only by all workers.
type Input struct {
	Data      []byte
	Lines     *lines.Index
	Workers   int
	ChunkSize int
	Logger    *zap.Logger
}

// Solver turns one input buffer into a single scalar answer.
type Solver interface {
	Solve(ctx context.Context, in *Input) (int64, error)
}

// SolverFunc adapts a function to Solver
type SolverFunc func(ctx context.Context, in *Input) (int64, error)

// Solve calls f
func (f SolverFunc) Solve(ctx context.Context, in *Input) (int64, error) {
	return f(ctx, in)
}

// ParallelOptions returns the fan-out options configured on the input
func (in *Input) ParallelOptions() []parallel.Option {
	return []parallel.Option{
		parallel.WithWorkers(in.Workers),
		parallel.WithChunkSize(in.ChunkSize),
	}
}

// Log returns the input's logger, or a no-op logger when none is set
func (in *Input) Log() *zap.Logger {
	if in.Logger == nil {
		return zap.NewNop()
	}
	return in.Logger
}
