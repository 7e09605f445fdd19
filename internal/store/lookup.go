package store

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxNameDistance is the largest edit distance Nearest accepts as a match.
// Anything farther is treated as "no such name" rather than risking a wrong
// settlement or route.
const maxNameDistance = 3

// Nearest resolves a possibly misspelled name against a candidate list.
// Exact matches (case-insensitive) win; otherwise the candidate with the
// smallest edit distance within the threshold is returned. Ties keep the
// earlier candidate, so callers passing a sorted list get a stable answer.
func Nearest(query string, candidates []string) (int, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return -1, false
	}

	best := -1
	bestDist := maxNameDistance + 1
	for i, candidate := range candidates {
		c := strings.ToLower(candidate)
		if c == query {
			return i, true
		}
		if d := levenshtein.ComputeDistance(query, c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return -1, false
	}
	return best, true
}
