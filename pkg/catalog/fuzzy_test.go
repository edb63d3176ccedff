package catalog

import (
	"context"
	"testing"
)

func TestFuzzyFallbackCatchesTypos(t *testing.T) {
	ix := BuildIndex(testProducts())

	cases := []struct {
		query string
		want  string
	}{
		{"aspirn", "Aspirin"},    // dropped character
		{"aspiron", "Aspirin"},   // substitution
		{"caffiene", "Caffeine"}, // transposition, distance 2
	}

	for _, tc := range cases {
		results, err := ix.Search(context.Background(), tc.query, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) == 0 || results[0].Name != tc.want {
			t.Errorf("Search(%q) = %v, want %s", tc.query, results, tc.want)
			continue
		}
		if *results[0].Similarity >= 0.95 {
			t.Errorf("typo match for %q must not score as exact: %v", tc.query, *results[0].Similarity)
		}
	}
}

func TestFuzzyFallbackSkipsShortAndGarbageQueries(t *testing.T) {
	ix := BuildIndex(testProducts())

	for _, query := range []string{"asq", "zzz", "qqqqqqqq"} {
		results, err := ix.Search(context.Background(), query, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q) = %v, want no matches", query, results)
		}
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b  string
		limit int
		want  int
	}{
		{"aspirin", "aspirin", 2, 0},
		{"aspirn", "aspirin", 2, 1},
		{"caffiene", "caffeine", 2, 2},
		{"aspirin", "caffeine", 2, -1},
		{"", "ab", 2, 2},
	}

	for _, tc := range cases {
		if got := editDistance(tc.a, tc.b, tc.limit); got != tc.want {
			t.Errorf("editDistance(%q, %q, %d) = %d, want %d", tc.a, tc.b, tc.limit, got, tc.want)
		}
	}
}
