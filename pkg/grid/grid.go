// Package grid provides a rectangular, read-only view over an indexed buffer
// together with the digit-run scanner used by the grid puzzles.
//
// Cells are addressed by (row, column). Any coordinate outside the grid reads
// as the placeholder byte, which is neither a digit nor a symbol, so callers
// can read all eight neighbours of a cell without bounds checks.
package grid

import (
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/lines"
)

// DefaultPlaceholder is the filler byte of the published grids
const DefaultPlaceholder byte = '.'

// MaxRunDigits bounds a digit run so that its value, and the product of
// two values, fit in an int64.
const MaxRunDigits = 9

// Grid is a rectangular view over the lines of a buffer.
type Grid struct {
	buf         []byte
	spans       []lines.Span
	width       int
	placeholder byte
}

// Option configures a Grid
type Option func(*Grid)

// WithPlaceholder sets the filler byte. It must not be a digit.
func WithPlaceholder(b byte) Option {
	return func(g *Grid) {
		g.placeholder = b
	}
}

// New builds a grid over buf using the spans of idx. The width is taken from
// the first row and every other row must match it.
func New(buf []byte, idx *lines.Index, opts ...Option) (*Grid, error) {
	g := &Grid{
		buf:         buf,
		spans:       idx.Spans(),
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(g)
	}

	if IsDigit(g.placeholder) {
		return nil, errors.Newf(errors.ErrorTypeConfig, "placeholder %q cannot be a digit", g.placeholder)
	}
	if len(g.spans) == 0 {
		return g, nil
	}

	g.width = g.spans[0].Length
	for i, s := range g.spans {
		if s.End() > len(buf) {
			return nil, errors.New(errors.ErrorTypeInternal, "line span outside buffer").
				WithDetail("line", i+1).
				WithDetail("offset", s.Offset)
		}
		if s.Length != g.width {
			return nil, errors.Newf(errors.ErrorTypeRaggedGrid,
				"row %d has width %d, expected %d", i+1, s.Length, g.width).
				WithDetail("line", i+1).
				WithDetail("offset", s.Offset)
		}
		if col := longRun(buf[s.Offset:s.End()]); col >= 0 {
			return nil, errors.Newf(errors.ErrorTypeMalformedInput,
				"number longer than %d digits", MaxRunDigits).
				WithDetail("line", i+1).
				WithDetail("column", col+1)
		}
	}
	return g, nil
}

// longRun returns the start of the first digit run in line longer than
// MaxRunDigits, or -1.
func longRun(line []byte) int {
	n := 0
	for i, b := range line {
		if !IsDigit(b) {
			n = 0
			continue
		}
		if n++; n > MaxRunDigits {
			return i - MaxRunDigits
		}
	}
	return -1
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return len(g.spans)
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Placeholder returns the filler byte, which doubles as the out-of-bounds value
func (g *Grid) Placeholder() byte {
	return g.placeholder
}

// Row returns row r as a subslice of the buffer
func (g *Grid) Row(r int) []byte {
	s := g.spans[r]
	return g.buf[s.Offset:s.End():s.End()]
}

// At returns the byte at (row, col), or the placeholder when the coordinate
// falls outside the grid.
func (g *Grid) At(row, col int) byte {
	if row < 0 || row >= len(g.spans) || col < 0 || col >= g.width {
		return g.placeholder
	}
	return g.buf[g.spans[row].Offset+col]
}

// IsSymbol reports whether b is neither a digit nor the placeholder
func (g *Grid) IsSymbol(b byte) bool {
	return b != g.placeholder && !IsDigit(b)
}

// IsDigit reports whether b is an ASCII digit
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
