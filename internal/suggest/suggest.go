// Package suggest picks the closest valid option for a rejected input
// value, used for "did you mean" hints on invalid fields.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// minSimilarity is the relative similarity an option must reach before
// it is offered as a hint.
const minSimilarity = 0.5

// Nearest returns the option most similar to input. The second return is
// false when the input is empty or nothing is similar enough.
func Nearest(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, opt := range options {
		if s := similarity(input, opt); s > bestScore {
			best, bestScore = opt, s
		}
	}
	if bestScore < minSimilarity {
		return "", false
	}
	return best, true
}

func similarity(a, b string) float64 {
	a = strings.ToUpper(a)
	b = strings.ToUpper(b)
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
