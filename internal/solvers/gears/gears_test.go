package gears

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/grid"
	"github.com/ajitpratap0/linescan/pkg/lines"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
	"github.com/ajitpratap0/linescan/pkg/testutil"
)

const schematic = `467..114..
...*......
..35..633.
......#...
617*......
.....+.58.
..592.....
......755.
...$.*....
.664.598..
`

func build(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	buf := []byte(strings.Join(rows, "\n"))
	g, err := grid.New(buf, lines.Split(buf))
	require.NoError(t, err)
	return g
}

func TestValidate(t *testing.T) {
	g := build(t, strings.Split(strings.TrimSuffix(schematic, "\n"), "\n")...)

	want := []int{467, 0, 35 + 633, 0, 617, 0, 592, 755, 0, 664 + 598}
	for row, w := range want {
		assert.Equal(t, w, Validate(g, row), "row %d", row)
	}
}

func TestValidateNeighbours(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		row  int
		want int
	}{
		{name: "isolated", rows: []string{"1..", "...", "..#"}, row: 0, want: 0},
		{name: "diagonal only", rows: []string{"1..", ".#.", "..."}, row: 0, want: 1},
		{name: "left", rows: []string{"#12"}, row: 0, want: 12},
		{name: "right", rows: []string{"12#"}, row: 0, want: 12},
		{name: "below trailing diagonal", rows: []string{"12.", "..%"}, row: 0, want: 12},
		{name: "above", rows: []string{".$.", "...", "..."}, row: 1, want: 0},
		{name: "counted once", rows: []string{"#.#", "123", "#.#"}, row: 1, want: 123},
		{name: "edge safe", rows: []string{"9"}, row: 0, want: 0},
		{name: "two runs one symbol", rows: []string{"12/34"}, row: 0, want: 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.rows...)
			assert.Equal(t, tt.want, Validate(g, tt.row))
		})
	}
}

func TestPartNumbers(t *testing.T) {
	g := build(t, "12.7", "#...")
	parts := PartNumbers(g, 0)
	require.Len(t, parts, 1)
	assert.Equal(t, grid.Run{Row: 0, Start: 0, End: 2, Value: 12}, parts[0])
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name        string
		rows        []string
		row, col    int
		wantNumbers int
		wantRatio   int
	}{
		{name: "above and below", rows: []string{"467..", "...*.", "..35."}, row: 1, col: 3, wantNumbers: 2, wantRatio: 467 * 35},
		{name: "same row distinct", rows: []string{"12*34"}, row: 0, col: 2, wantNumbers: 2, wantRatio: 12 * 34},
		{name: "contiguous above is one", rows: []string{"123", ".*.", ".4."}, row: 1, col: 1, wantNumbers: 2, wantRatio: 492},
		{name: "extends past window", rows: []string{"1234.", "...*.", "....5"}, row: 1, col: 3, wantNumbers: 2, wantRatio: 6170},
		{name: "split above is two", rows: []string{"1.1", ".*."}, row: 1, col: 1, wantNumbers: 2, wantRatio: 1},
		{name: "corner", rows: []string{"*1", "2."}, row: 0, col: 0, wantNumbers: 2, wantRatio: 2},
		{name: "opposite corner", rows: []string{".3", "4*"}, row: 1, col: 1, wantNumbers: 2, wantRatio: 12},
		{name: "single", rows: []string{"...", ".*.", "..7"}, row: 1, col: 1, wantNumbers: 1},
		{name: "none", rows: []string{"*"}, row: 0, col: 0, wantNumbers: 0},
		{name: "three", rows: []string{"1.1", ".*.", "..2"}, row: 1, col: 1, wantNumbers: 3},
		{name: "six", rows: []string{"1.1", "1*1", "1.1"}, row: 1, col: 1, wantNumbers: 6},
		{name: "no wrap across rows", rows: []string{"..5", "*..", "..."}, row: 1, col: 0, wantNumbers: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.rows...)
			gear := Reconstruct(g, tt.row, tt.col)
			assert.Equal(t, tt.row, gear.Row)
			assert.Equal(t, tt.col, gear.Col)
			assert.Equal(t, tt.wantNumbers, gear.Numbers)
			assert.Equal(t, tt.wantRatio, gear.Ratio)
		})
	}
}

func TestRowRatios(t *testing.T) {
	g := build(t, "1.1..2", ".*..*.", "..2.3.")

	sum, overfull := RowRatios(g, 1, DefaultSymbol)
	assert.Equal(t, 6, sum)
	require.Len(t, overfull, 1)
	assert.Equal(t, Gear{Row: 1, Col: 1, Numbers: 3}, overfull[0])

	sum, overfull = RowRatios(g, 0, DefaultSymbol)
	assert.Zero(t, sum)
	assert.Empty(t, overfull)
}

func TestSolvers(t *testing.T) {
	cfg := config.NewBaseConfig("test")

	part1, err := NewPartSolver(cfg).Solve(testutil.TestContext(t), testutil.Input(t, schematic))
	require.NoError(t, err)
	assert.Equal(t, int64(4361), part1)

	part2, err := NewRatioSolver(cfg).Solve(testutil.TestContext(t), testutil.Input(t, schematic))
	require.NoError(t, err)
	assert.Equal(t, int64(467835), part2)
}

func TestSolverIsRepeatable(t *testing.T) {
	cfg := config.NewBaseConfig("test")
	in := testutil.Input(t, schematic)
	s := NewRatioSolver(cfg)

	first, err := s.Solve(testutil.TestContext(t), in)
	require.NoError(t, err)
	second, err := s.Solve(testutil.TestContext(t), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRatioSolverOverfull(t *testing.T) {
	const overfull = "1.1\n.*.\n..2\n"

	t.Run("lenient", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		in := testutil.Input(t, overfull)
		in.Logger = zap.New(core)

		got, err := NewRatioSolver(config.NewBaseConfig("test")).Solve(testutil.TestContext(t), in)
		require.NoError(t, err)
		assert.Zero(t, got)
		require.Equal(t, 1, logs.FilterMessage("gear ignored").Len())
		assert.Equal(t, int64(3), logs.All()[0].ContextMap()["numbers"])
	})

	t.Run("strict", func(t *testing.T) {
		cfg := config.NewBaseConfig("test")
		cfg.Grid.StrictGears = true

		_, err := NewRatioSolver(cfg).Solve(testutil.TestContext(t), testutil.Input(t, overfull))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeMalformedInput))

		var e *errors.Error
		require.ErrorAs(t, err, &e)
		line, _ := e.Detail("line")
		col, _ := e.Detail("column")
		assert.Equal(t, 2, line)
		assert.Equal(t, 2, col)
	})
}

func TestSolverRaggedGrid(t *testing.T) {
	_, err := NewPartSolver(config.NewBaseConfig("test")).Solve(testutil.TestContext(t), testutil.Input(t, "...\n..\n"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRaggedGrid))
}

func TestSolverRejectsLongNumbers(t *testing.T) {
	for _, part := range []int{1, 2} {
		_, err := testutil.Solve(t, Name, part, nil, strings.Repeat(".", 24)+"\n12345678901234567890123#\n")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeMalformedInput))
		assert.Contains(t, err.Error(), "(line 2, column 1)")
	}
}

func TestCustomSymbols(t *testing.T) {
	cfg := config.NewBaseConfig("test")
	cfg.Grid.Placeholder = "_"
	cfg.Grid.GearSymbol = "x"

	in := testutil.Input(t, "3x4\n___\n")
	part2, err := NewRatioSolver(cfg).Solve(testutil.TestContext(t), in)
	require.NoError(t, err)
	assert.Equal(t, int64(12), part2)

	// '.' is a symbol once the placeholder changes
	part1, err := NewPartSolver(cfg).Solve(testutil.TestContext(t), testutil.Input(t, "5.\n__\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), part1)
}

func TestRegistered(t *testing.T) {
	for _, part := range []int{1, 2} {
		assert.True(t, registry.GetRegistry().Has(Name, part))
	}
}

func BenchmarkValidate(b *testing.B) {
	buf := []byte(strings.Repeat(strings.Repeat("467..114..", 14)+"\n"+strings.Repeat("...*......", 14)+"\n", 70))
	g, err := grid.New(buf, lines.Split(buf))
	require.NoError(b, err)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := 0; row < g.Rows(); row++ {
			_ = Validate(g, row)
		}
	}
}
