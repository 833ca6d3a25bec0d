package retrieval

// Confident reports whether the best (smallest) distance among the retrieved
// passages falls under the threshold. An empty result set is never confident.
func Confident(passages []Passage, threshold float64) bool {
	if len(passages) == 0 {
		return false
	}
	best := passages[0].Distance
	for _, p := range passages[1:] {
		if p.Distance < best {
			best = p.Distance
		}
	}
	return best < threshold
}
