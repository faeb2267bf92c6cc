package suggest

import "fmt"

// MinSimilarity is the score below which Closest proposes nothing.
const MinSimilarity = 0.6

// Closest returns the candidate most similar to name. Ties go to the earlier
// candidate. It reports false when no candidate reaches MinSimilarity.
func Closest(name string, candidates []string) (string, bool) {
	best, bestScore := "", MinSimilarity

	found := false

	for _, c := range candidates {
		if score := Similarity(name, c); score > bestScore || (!found && score == bestScore) {
			best, bestScore, found = c, score, true
		}
	}

	return best, found
}

// Hint renders a " (did you mean ...?)" suffix for error messages, or an
// empty string when nothing is close enough.
func Hint(name string, candidates []string) string {
	if c, ok := Closest(name, candidates); ok {
		return fmt.Sprintf(" (did you mean %q?)", c)
	}

	return ""
}
