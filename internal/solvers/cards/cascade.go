package cards

// Propagate returns the total number of cards once every card i has won one
// copy of each of the next matches[i] cards for every copy of card i held.
// Wins past the last card are dropped.
func Propagate(matches []int) int64 {
	counts := make([]int64, len(matches))
	for i := range counts {
		counts[i] = 1
	}

	var total int64
	for i, k := range matches {
		for j := i + 1; j <= i+k && j < len(counts); j++ {
			counts[j] += counts[i]
		}
		total += counts[i]
	}
	return total
}
