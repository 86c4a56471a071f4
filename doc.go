// Package linescan is a batch engine for line-oriented text records.
//
// A run loads one input file (memory-mapped, or decompressed when it is
// gzip, zstd, lz4, snappy or s2), indexes its lines once without copying,
// and fans a registered solver out over the lines on every core. Each solver
// reduces per-record values to a single integer.
//
// # Architecture
//
//   - pkg/lines: zero-copy line index over an immutable buffer
//   - pkg/grid: rectangular view over the index, digit-run scanning
//   - pkg/parallel: chunked fan-out with ordered results and first-error abort
//   - pkg/puzzle, pkg/puzzle/registry: the Solver contract and the
//     (puzzle, part) registry solvers add themselves to
//   - internal/solvers/gears: part numbers and gear ratios on a schematic grid
//   - internal/solvers/cards: scratchcard scoring and the copy cascade
//   - internal/solvers/cubes: cube game feasibility and minimum bags
//   - internal/pipeline: the batch runner tying loading, indexing, solving,
//     metrics and tracing together
//   - pkg/report: text, JSON and CBOR result sinks
//
// # Quick Start
//
//	linescan list
//	linescan run --puzzle gears --part 2 --input day03.txt
//	LINESCAN_WORKERS=4 linescan run -p cards -n 2 -i day04.txt.zst --format json
//
// From Go:
//
//	import (
//	    _ "github.com/ajitpratap0/linescan/internal/solvers/gears"
//	    "github.com/ajitpratap0/linescan/internal/pipeline"
//	    "github.com/ajitpratap0/linescan/pkg/config"
//	)
//
//	runner, err := pipeline.NewRunner(config.NewBaseConfig("day03"), logger)
//	rep, err := runner.Run(ctx, pipeline.Request{Puzzle: "gears", Part: 1, Path: "day03.txt"})
//	fmt.Println(rep.Result)
//
// # Configuration
//
// Settings live in config.BaseConfig and can be loaded from YAML or JSONC
// files with ${VAR} substitution. The CLI layers LINESCAN_* environment
// variables and flags over the file.
//
// # Errors
//
// Failures are *errors.Error values typed malformed_input, capacity_exceeded,
// ragged_grid, not_found, config, file or internal, carrying line and column
// details where they apply. A failing record fails the whole run.
package linescan
