package search

import (
	"strings"
	"testing"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

func TestTierThresholds(t *testing.T) {
	cases := []struct {
		similarity float64
		want       Tier
	}{
		{1.0, TierHigh},
		{0.97, TierHigh},
		{0.95, TierHigh},
		{0.94, TierMedium},
		{0.82, TierMedium},
		{0.80, TierMedium},
		{0.79, TierLow},
		{0.75, TierLow},
		{0.70, TierLow},
		{0.69, TierWeak},
		{0.5, TierWeak},
		{0.0, TierWeak},
	}

	for _, tc := range cases {
		if got := TierFor(tc.similarity); got != tc.want {
			t.Errorf("TierFor(%v) = %v, want %v", tc.similarity, got, tc.want)
		}
	}
}

func TestTierOrderingIsMonotonic(t *testing.T) {
	prev := TierFor(0)
	for sim := 0.0; sim <= 1.0; sim += 0.01 {
		cur := TierFor(sim)
		if cur < prev {
			t.Fatalf("tier dropped from %v to %v at similarity %v", prev, cur, sim)
		}
		prev = cur
	}
}

func TestTierOfUnscoredCandidate(t *testing.T) {
	c := catalog.Candidate{Name: "Aspirin"}
	if got := TierOf(c); got != TierNone {
		t.Fatalf("candidate without score should have no tier, got %v", got)
	}
	if TierNone.Label() != "" {
		t.Fatalf("TierNone must not have a label, got %q", TierNone.Label())
	}
}

func TestNoMatchesMessageContainsQuery(t *testing.T) {
	r := NewRenderer()
	out := r.ResultSet("xyzzy", nil)
	if !strings.Contains(out, "no matches for 'xyzzy'") {
		t.Fatalf("missing literal no-matches message: %q", out)
	}
}

func TestEmptyQueryRendersNothing(t *testing.T) {
	r := NewRenderer()
	if out := r.ResultSet("", nil); out != "" {
		t.Fatalf("empty query must render nothing, got %q", out)
	}
}

func TestCandidateFallsBackToPlaceholderImage(t *testing.T) {
	r := NewRenderer()
	out := r.Candidate(catalog.Candidate{Name: "Aspirin"})
	if !strings.Contains(out, PlaceholderImage) {
		t.Fatalf("expected placeholder image, got %q", out)
	}

	out = r.Candidate(catalog.Candidate{Name: "Aspirin", ImageURL: "https://img/x.webp"})
	if !strings.Contains(out, "https://img/x.webp") || strings.Contains(out, PlaceholderImage) {
		t.Fatalf("expected candidate image, got %q", out)
	}
}

func TestResultSetRendersTierBadges(t *testing.T) {
	r := NewRenderer()
	rs := catalog.ResultSet{
		{Name: "Aspirin", Similarity: catalog.Score(0.97)},
		{Name: "Aspartame", Similarity: catalog.Score(0.72)},
		{Name: "Asparagine"},
	}

	out := r.ResultSet("asp", rs)
	for _, want := range []string{"Aspirin", "[high]", "Aspartame", "[low]", "Asparagine"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered panel missing %q:\n%s", want, out)
		}
	}
}
