package query

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to value by edit distance. Nothing
// is suggested when the best candidate needs more edits than a third of
// value's length, with a floor of two.
func Suggest(value string, candidates []string) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(value, strings.ToLower(c))
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len([]rune(value))/3) {
		return "", false
	}
	return best, true
}
