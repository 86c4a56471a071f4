package cards

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/parallel"
	"github.com/ajitpratap0/linescan/pkg/pool"
	"github.com/ajitpratap0/linescan/pkg/puzzle"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
)

// Name is the registry name of the card puzzle
const Name = "cards"

func init() {
	registry.MustRegister(registry.Info{
		Puzzle:      Name,
		Part:        1,
		Description: "sum of card points",
	}, func(cfg *config.BaseConfig) (puzzle.Solver, error) {
		return NewPointSolver(OptionsFromConfig(cfg)), nil
	})
	registry.MustRegister(registry.Info{
		Puzzle:      Name,
		Part:        2,
		Description: "total cards after copies cascade",
	}, func(cfg *config.BaseConfig) (puzzle.Solver, error) {
		return NewCascadeSolver(OptionsFromConfig(cfg)), nil
	})
}

// matchesPerRecord tokenizes every record in parallel and returns its match count
func matchesPerRecord(ctx context.Context, in *puzzle.Input, opts Options) ([]int64, error) {
	tokenizers := pool.New(
		func() *Tokenizer { return NewTokenizer(opts) },
		(*Tokenizer).Reset,
	)

	matches, err := parallel.Map(ctx, in.Lines.Len(), func(_ context.Context, i int) (int64, error) {
		t := tokenizers.Get()
		defer tokenizers.Put(t)

		winning, candidates, err := t.Tokenize(in.Lines.Line(i))
		if err != nil {
			return 0, errors.AtLine(err, i+1)
		}
		matches, _ := Score(winning, candidates)
		return int64(matches), nil
	}, in.ParallelOptions()...)

	allocated, _, gets := tokenizers.Stats()
	in.Log().Debug("records tokenized",
		zap.Int64("tokenizers", allocated),
		zap.Int64("records", gets))
	return matches, err
}

// PointSolver sums the points of every card
type PointSolver struct {
	opts Options
}

// NewPointSolver creates a point solver
func NewPointSolver(opts Options) *PointSolver {
	return &PointSolver{opts: opts}
}

// Solve implements puzzle.Solver
func (s *PointSolver) Solve(ctx context.Context, in *puzzle.Input) (int64, error) {
	matches, err := matchesPerRecord(ctx, in, s.opts)
	if err != nil {
		return 0, err
	}

	var total int64
	for i, m := range matches {
		p, err := Points(int(m))
		if err != nil {
			return 0, errors.AtLine(err, i+1)
		}
		if total, err = addPoints(total, p); err != nil {
			return 0, errors.AtLine(err, i+1)
		}
	}
	return total, nil
}

// CascadeSolver counts the cards held once all copies have been won
type CascadeSolver struct {
	opts Options
}

// NewCascadeSolver creates a cascade solver
func NewCascadeSolver(opts Options) *CascadeSolver {
	return &CascadeSolver{opts: opts}
}

// Solve implements puzzle.Solver. Matching runs in parallel; the cascade
// itself is sequential.
func (s *CascadeSolver) Solve(ctx context.Context, in *puzzle.Input) (int64, error) {
	matches, err := matchesPerRecord(ctx, in, s.opts)
	if err != nil {
		return 0, err
	}

	counts := make([]int, len(matches))
	for i, m := range matches {
		counts[i] = int(m)
	}
	return Propagate(counts), nil
}
