package catalog

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Fuzzy fallback for the local index: when a query matches no prefix, a
// bounded edit-distance pass over the indexed keys catches single-typo
// queries ("aspirn"). Remote backends do their own typo handling; this only
// serves the offline/demo path.

const (
	// fuzzyMinQuery keeps very short inputs out of typo correction; with one
	// or two characters nearly everything is within distance 2.
	fuzzyMinQuery = 4
	maxEditDist   = 2
)

// fuzzySearch scans every key for a small edit distance to the query and
// returns hits scored by closeness: 1 - dist/len(key). Scores land well under
// the exact-match range, so typo hits always display as weaker tiers.
// Caller must hold ix.mu.
func (ix *Index) fuzzySearch(query string) map[int]float64 {
	if len(query) < fuzzyMinQuery {
		return nil
	}

	best := make(map[int]float64)
	for key, product := range ix.byName {
		// Cheap pre-filter: keys differing in length by more than the
		// allowed distance can never qualify.
		if abs(len(key)-len(query)) > maxEditDist {
			continue
		}
		dist := editDistance(query, key, maxEditDist)
		if dist < 0 || dist == 0 {
			// Zero distance is an exact key and handled by the trie walk.
			continue
		}
		sim := 1 - float64(dist)/float64(len(key))
		if prev, seen := best[product]; !seen || sim > prev {
			best[product] = sim
		}
	}

	if len(best) > 0 {
		log.Debugf("Fuzzy fallback matched %d products for %q", len(best), query)
	}
	return best
}

// editDistance computes the Levenshtein distance between a and b, giving up
// with -1 once the distance exceeds limit.
func editDistance(a, b string, limit int) int {
	ar, br := []rune(strings.ToLower(a)), []rune(strings.ToLower(b))
	if len(ar) > len(br) {
		ar, br = br, ar
	}

	prev := make([]int, len(ar)+1)
	cur := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(br); j++ {
		cur[0] = j
		rowMin := cur[0]
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			cur[i] = min3(prev[i]+1, cur[i-1]+1, prev[i-1]+cost)
			if cur[i] < rowMin {
				rowMin = cur[i]
			}
		}
		if rowMin > limit {
			return -1
		}
		prev, cur = cur, prev
	}

	if prev[len(ar)] > limit {
		return -1
	}
	return prev[len(ar)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
