package gears

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/grid"
	"github.com/ajitpratap0/linescan/pkg/parallel"
	"github.com/ajitpratap0/linescan/pkg/puzzle"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
)

// Name is the registry name of the grid puzzle
const Name = "gears"

func init() {
	registry.MustRegister(registry.Info{
		Puzzle:      Name,
		Part:        1,
		Description: "sum of part numbers adjacent to a symbol",
	}, func(cfg *config.BaseConfig) (puzzle.Solver, error) {
		return NewPartSolver(cfg), nil
	})
	registry.MustRegister(registry.Info{
		Puzzle:      Name,
		Part:        2,
		Description: "sum of gear ratios",
	}, func(cfg *config.BaseConfig) (puzzle.Solver, error) {
		return NewRatioSolver(cfg), nil
	})
}

// PartSolver sums the part numbers of a grid
type PartSolver struct {
	placeholder byte
}

// NewPartSolver creates a part number solver
func NewPartSolver(cfg *config.BaseConfig) *PartSolver {
	return &PartSolver{placeholder: cfg.Grid.PlaceholderByte()}
}

// Solve implements puzzle.Solver
func (s *PartSolver) Solve(ctx context.Context, in *puzzle.Input) (int64, error) {
	g, err := grid.New(in.Data, in.Lines, grid.WithPlaceholder(s.placeholder))
	if err != nil {
		return 0, err
	}

	return parallel.MapSum(ctx, g.Rows(), func(_ context.Context, row int) (int64, error) {
		return int64(Validate(g, row)), nil
	}, in.ParallelOptions()...)
}

// RatioSolver sums the gear ratios of a grid
type RatioSolver struct {
	placeholder byte
	symbol      byte
	strict      bool
}

// NewRatioSolver creates a gear ratio solver
func NewRatioSolver(cfg *config.BaseConfig) *RatioSolver {
	return &RatioSolver{
		placeholder: cfg.Grid.PlaceholderByte(),
		symbol:      cfg.Grid.GearByte(),
		strict:      cfg.Grid.StrictGears,
	}
}

// Solve implements puzzle.Solver. A gear touching three or more numbers is
// logged and skipped, or fails the batch in strict mode.
func (s *RatioSolver) Solve(ctx context.Context, in *puzzle.Input) (int64, error) {
	g, err := grid.New(in.Data, in.Lines, grid.WithPlaceholder(s.placeholder))
	if err != nil {
		return 0, err
	}
	log := in.Log()

	return parallel.MapSum(ctx, g.Rows(), func(_ context.Context, row int) (int64, error) {
		sum, overfull := RowRatios(g, row, s.symbol)
		for _, gear := range overfull {
			if s.strict {
				return 0, errors.Newf(errors.ErrorTypeMalformedInput,
					"gear touches %d numbers", gear.Numbers).
					WithDetail("line", gear.Row+1).
					WithDetail("column", gear.Col+1)
			}
			log.Debug("gear ignored",
				zap.Int("line", gear.Row+1),
				zap.Int("column", gear.Col+1),
				zap.Int("numbers", gear.Numbers))
		}
		return int64(sum), nil
	}, in.ParallelOptions()...)
}
