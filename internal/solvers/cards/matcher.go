package cards

import (
	"math"

	"github.com/ajitpratap0/linescan/pkg/errors"
)

// MaxScoredMatches is the largest match count whose score fits in an int64
const MaxScoredMatches = 62

// Score counts the candidates present in winning, repeats included, and
// converts the count to points: 0 for no match, otherwise 2^(matches-1).
// Points is 0 when matches exceeds MaxScoredMatches; use Points to detect it.
func Score(winning NumberSet, candidates []int) (matches int, points int64) {
	for _, c := range candidates {
		if winning.Contains(c) {
			matches++
		}
	}
	points, _ = Points(matches)
	return matches, points
}

// Points converts a match count to a score
func Points(matches int) (int64, error) {
	switch {
	case matches <= 0:
		return 0, nil
	case matches > MaxScoredMatches:
		return 0, errors.Newf(errors.ErrorTypeCapacityExceeded,
			"%d matches score more than an int64 holds", matches).
			WithDetail("limit", MaxScoredMatches)
	}
	return 1 << (matches - 1), nil
}

// addPoints adds p to total, failing instead of wrapping
func addPoints(total, p int64) (int64, error) {
	if p > math.MaxInt64-total {
		return 0, errors.New(errors.ErrorTypeCapacityExceeded, "point total overflows int64")
	}
	return total + p, nil
}
