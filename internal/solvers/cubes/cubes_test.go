package cubes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/testutil"
)

const games = `Game 1: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green
Game 2: 1 blue, 2 green; 3 green, 4 blue, 1 red; 1 green, 1 blue
Game 3: 8 green, 6 blue, 20 red; 5 blue, 4 red, 13 green; 5 green, 1 red
Game 4: 1 green, 3 red, 6 blue; 3 green, 6 red; 3 green, 15 blue, 14 red
Game 5: 6 red, 1 blue, 3 green; 2 blue, 1 red, 2 green
`

func TestParseGame(t *testing.T) {
	game, err := ParseGame([]byte("Game 12: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green"))
	require.NoError(t, err)

	want := Game{
		ID: 12,
		Draws: []Set{
			{Red: 4, Blue: 3},
			{Red: 1, Green: 2, Blue: 6},
			{Green: 2},
		},
	}
	if diff := cmp.Diff(want, game); diff != "" {
		t.Errorf("ParseGame mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGameIgnoresItemOrder(t *testing.T) {
	a, err := ParseGame([]byte("Game 1: 1 red, 2 green, 3 blue"))
	require.NoError(t, err)
	b, err := ParseGame([]byte("Game 1:3 blue,1 red ,  2 green\r"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseGameSkipsBlankDraws(t *testing.T) {
	tests := []struct {
		line string
		want Game
	}{
		{line: "Game 1: 3 red;", want: Game{ID: 1, Draws: []Set{{Red: 3}}}},
		{line: "Game 2: 3 red; ;1 blue", want: Game{ID: 2, Draws: []Set{{Red: 3}, {Blue: 1}}}},
		{line: "Game 3:", want: Game{ID: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			game, err := ParseGame([]byte(tt.line))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, game); diff != "" {
				t.Errorf("ParseGame mismatch (-want +got):\n%s", diff)
			}
		})
	}

	part2, err := testutil.Solve(t, Name, 2, nil, "Game 1: 3 red, 2 green;\nGame 2: 1 blue; 1 red, 1 green;\n")
	require.NoError(t, err)
	assert.Equal(t, int64(1), part2)
}

func TestParseGameErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "no header", line: "Match 1: 1 red"},
		{name: "no colon", line: "Game 1 1 red"},
		{name: "bad id", line: "Game x: 1 red"},
		{name: "unknown colour", line: "Game 1: 1 purple"},
		{name: "missing count", line: "Game 1: red"},
		{name: "bad count", line: "Game 1: 1x red"},
		{name: "empty item", line: "Game 1: 1 red,; 2 blue"},
		{name: "empty record", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGame([]byte(tt.line))
			require.Error(t, err)
			assert.True(t, errors.HasType(err, errors.ErrorTypeMalformedInput), "got %v", err)
		})
	}
}

func TestSetHelpers(t *testing.T) {
	bag := Set{Red: 12, Green: 13, Blue: 14}
	assert.True(t, Set{Red: 12, Green: 13, Blue: 14}.Within(bag))
	assert.False(t, Set{Red: 20}.Within(bag))
	assert.Equal(t, 48, Set{Red: 4, Green: 2, Blue: 6}.Power())

	game := Game{Draws: []Set{{Red: 4, Blue: 3}, {Red: 1, Green: 2, Blue: 6}, {Green: 2}}}
	assert.Equal(t, Set{Red: 4, Green: 2, Blue: 6}, game.Minimum())
	assert.True(t, game.Possible(bag))
}

func TestSolvers(t *testing.T) {
	cfg := config.NewBaseConfig("test")

	part1, err := testutil.Solve(t, Name, 1, cfg, games)
	require.NoError(t, err)
	assert.Equal(t, int64(8), part1)

	part2, err := testutil.Solve(t, Name, 2, cfg, games)
	require.NoError(t, err)
	assert.Equal(t, int64(2286), part2)
}

func TestConfiguredBag(t *testing.T) {
	cfg := config.NewBaseConfig("test")
	cfg.Cubes.Red = 20
	cfg.Cubes.Blue = 15

	// games 3 and 4 become possible with the larger bag
	part1, err := testutil.Solve(t, Name, 1, cfg, games)
	require.NoError(t, err)
	assert.Equal(t, int64(15), part1)
}

func TestSolverReportsLine(t *testing.T) {
	_, err := testutil.Solve(t, Name, 2, config.NewBaseConfig("test"), "Game 1: 1 red\nGame 2: 2 teal\n")
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	line, ok := e.Detail("line")
	require.True(t, ok)
	assert.Equal(t, 2, line)
	draw, ok := e.Detail("draw")
	require.True(t, ok)
	assert.Equal(t, 1, draw)
}
