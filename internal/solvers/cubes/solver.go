package cubes

import (
	"context"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/parallel"
	"github.com/ajitpratap0/linescan/pkg/puzzle"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
)

// Name is the registry name of the cube puzzle
const Name = "cubes"

func init() {
	registry.MustRegister(registry.Info{
		Puzzle:      Name,
		Part:        1,
		Description: "sum of ids of games possible with the configured bag",
	}, func(cfg *config.BaseConfig) (puzzle.Solver, error) {
		return NewSolver(func(g Game) int64 {
			if g.Possible(LimitsFromConfig(cfg)) {
				return int64(g.ID)
			}
			return 0
		}), nil
	})
	registry.MustRegister(registry.Info{
		Puzzle:      Name,
		Part:        2,
		Description: "sum of the power of each game's minimum bag",
	}, func(*config.BaseConfig) (puzzle.Solver, error) {
		return NewSolver(func(g Game) int64 {
			return int64(g.Minimum().Power())
		}), nil
	})
}

// Solver parses every game in parallel and sums a per-game value
type Solver struct {
	value func(Game) int64
}

// NewSolver creates a solver summing value over all games
func NewSolver(value func(Game) int64) *Solver {
	return &Solver{value: value}
}

// Solve implements puzzle.Solver
func (s *Solver) Solve(ctx context.Context, in *puzzle.Input) (int64, error) {
	return parallel.MapSum(ctx, in.Lines.Len(), func(_ context.Context, i int) (int64, error) {
		game, err := ParseGame(in.Lines.Line(i))
		if err != nil {
			return 0, errors.AtLine(err, i+1)
		}
		return s.value(game), nil
	}, in.ParallelOptions()...)
}
