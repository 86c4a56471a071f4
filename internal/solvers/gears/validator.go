// Package gears solves the engine schematic grids: part numbers are digit
// runs touching a symbol, and gears are designated symbols touching exactly
// two part numbers.
package gears

import (
	"github.com/ajitpratap0/linescan/pkg/grid"
)

// Validate returns the sum of every digit run in row that has at least one
// symbol among its neighbouring cells, diagonals included. Each run is
// counted once.
func Validate(g *grid.Grid, row int) int {
	sum := 0
	sc := grid.NewScanner(row, g.Row(row))
	for {
		run, ok := sc.Next()
		if !ok {
			return sum
		}
		if touchesSymbol(g, run) {
			sum += run.Value
		}
	}
}

// PartNumbers returns the runs of row that touch a symbol
func PartNumbers(g *grid.Grid, row int) []grid.Run {
	var parts []grid.Run
	sc := grid.NewScanner(row, g.Row(row))
	for {
		run, ok := sc.Next()
		if !ok {
			return parts
		}
		if touchesSymbol(g, run) {
			parts = append(parts, run)
		}
	}
}

// touchesSymbol checks the cells surrounding run, stopping at the first symbol.
func touchesSymbol(g *grid.Grid, run grid.Run) bool {
	for col := run.Start - 1; col <= run.End; col++ {
		if g.IsSymbol(g.At(run.Row-1, col)) || g.IsSymbol(g.At(run.Row+1, col)) {
			return true
		}
	}
	return g.IsSymbol(g.At(run.Row, run.Start-1)) || g.IsSymbol(g.At(run.Row, run.End))
}
