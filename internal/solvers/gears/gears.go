package gears

import (
	"github.com/ajitpratap0/linescan/pkg/grid"
)

// DefaultSymbol is the gear marker of the published grids
const DefaultSymbol byte = '*'

// Gear is the outcome of inspecting one designated symbol. Numbers is the
// count of distinct adjacent numbers; Ratio is their product when there are
// exactly two and 0 otherwise.
type Gear struct {
	Row     int
	Col     int
	Numbers int
	Ratio   int
}

// Reconstruct counts the numbers adjacent to the cell at (row, col) and, for
// exactly two, rebuilds both from their digits and multiplies them.
//
// Contiguous digit cells in the row above or below belong to one number. In
// the symbol's own row the cells left and right are always distinct numbers.
func Reconstruct(g *grid.Grid, row, col int) Gear {
	gear := Gear{Row: row, Col: col}

	// one digit cell per distinct number, at most 6 can exist
	var anchors [6][2]int
	n := 0
	add := func(r, c int) {
		if n < len(anchors) {
			anchors[n] = [2]int{r, c}
		}
		n++
	}

	for _, r := range [2]int{row - 1, row + 1} {
		inRun := false
		for c := col - 1; c <= col+1; c++ {
			if !grid.IsDigit(g.At(r, c)) {
				inRun = false
				continue
			}
			if !inRun {
				add(r, c)
			}
			inRun = true
		}
	}
	for _, c := range [2]int{col - 1, col + 1} {
		if grid.IsDigit(g.At(row, c)) {
			add(row, c)
		}
	}

	gear.Numbers = n
	if n != 2 {
		return gear
	}

	gear.Ratio = 1
	for _, a := range anchors[:2] {
		run, _ := grid.RunAt(g.Row(a[0]), a[1])
		gear.Ratio *= run.Value
	}
	return gear
}

// RowRatios sums the ratios of every symbol cell in row. Gears touching three
// or more numbers contribute nothing and are returned in overfull.
func RowRatios(g *grid.Grid, row int, symbol byte) (sum int, overfull []Gear) {
	line := g.Row(row)
	for col, b := range line {
		if b != symbol {
			continue
		}
		gear := Reconstruct(g, row, col)
		sum += gear.Ratio
		if gear.Numbers > 2 {
			overfull = append(overfull, gear)
		}
	}
	return sum, overfull
}
