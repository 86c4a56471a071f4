// Package cubes solves the cube game records. A record names a game and the
// handfuls of coloured cubes drawn from a bag:
//
//	Game 3: 8 green, 6 blue, 20 red; 5 blue, 4 red, 13 green
package cubes

import (
	"bytes"
	"strconv"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
)

var gamePrefix = []byte("Game ")

// Set is a count per colour. It describes one draw or a bag.
type Set struct {
	Red   int
	Green int
	Blue  int
}

// Game is one parsed record
type Game struct {
	ID    int
	Draws []Set
}

// LimitsFromConfig returns the bag described by the cubes section
func LimitsFromConfig(cfg *config.BaseConfig) Set {
	return Set{Red: cfg.Cubes.Red, Green: cfg.Cubes.Green, Blue: cfg.Cubes.Blue}
}

// ParseGame parses a record. Each item is read as a whole "count colour"
// pair regardless of the colour name's length. Blank draws, such as the one
// after a trailing ';', are skipped; a blank item inside a draw is an error.
func ParseGame(line []byte) (Game, error) {
	var game Game

	if !bytes.HasPrefix(line, gamePrefix) {
		return game, errors.New(errors.ErrorTypeMalformedInput, "missing game header")
	}
	rest := line[len(gamePrefix):]
	colon := bytes.IndexByte(rest, ':')
	if colon < 0 {
		return game, errors.New(errors.ErrorTypeMalformedInput, "missing ':' after game id")
	}
	id, err := parseCount(bytes.TrimSpace(rest[:colon]))
	if err != nil {
		return game, errors.Wrap(err, errors.ErrorTypeMalformedInput, "invalid game id")
	}
	game.ID = id

	for d, draw := range bytes.Split(rest[colon+1:], []byte{';'}) {
		if len(bytes.TrimSpace(draw)) == 0 {
			continue
		}
		var set Set
		for _, item := range bytes.Split(draw, []byte{','}) {
			if err := set.add(item); err != nil {
				return game, err.WithDetail("draw", d+1)
			}
		}
		game.Draws = append(game.Draws, set)
	}
	return game, nil
}

func (s *Set) add(item []byte) *errors.Error {
	fields := bytes.Fields(item)
	if len(fields) != 2 {
		return errors.Newf(errors.ErrorTypeMalformedInput, "expected \"count colour\", got %q", bytes.TrimSpace(item))
	}
	n, err := parseCount(fields[0])
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeMalformedInput, "invalid cube count")
	}

	switch string(fields[1]) {
	case "red":
		s.Red += n
	case "green":
		s.Green += n
	case "blue":
		s.Blue += n
	default:
		return errors.Newf(errors.ErrorTypeMalformedInput, "unknown colour %q", fields[1])
	}
	return nil
}

func parseCount(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.New(errors.ErrorTypeMalformedInput, "missing number")
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, errors.Newf(errors.ErrorTypeMalformedInput, "not a number: %q", b)
		}
	}
	return strconv.Atoi(string(b))
}

// Within reports whether every count of s fits in bag
func (s Set) Within(bag Set) bool {
	return s.Red <= bag.Red && s.Green <= bag.Green && s.Blue <= bag.Blue
}

// Power returns the product of the three counts
func (s Set) Power() int {
	return s.Red * s.Green * s.Blue
}

// Possible reports whether every draw of the game fits in bag
func (g Game) Possible(bag Set) bool {
	for _, d := range g.Draws {
		if !d.Within(bag) {
			return false
		}
	}
	return true
}

// Minimum returns the smallest bag that makes the game possible
func (g Game) Minimum() Set {
	var m Set
	for _, d := range g.Draws {
		m.Red = max(m.Red, d.Red)
		m.Green = max(m.Green, d.Green)
		m.Blue = max(m.Blue, d.Blue)
	}
	return m
}
