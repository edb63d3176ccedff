package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

// PlaceholderImage is rendered when a candidate carries no image reference.
const PlaceholderImage = "assets/placeholder.webp"

// Tier buckets a similarity score for display. Ordering is decided upstream;
// the tier is purely a visual indicator.
type Tier int

const (
	TierNone Tier = iota
	TierWeak
	TierLow
	TierMedium
	TierHigh
)

// TierFor maps a similarity score to its display tier.
func TierFor(similarity float64) Tier {
	switch {
	case similarity >= 0.95:
		return TierHigh
	case similarity >= 0.80:
		return TierMedium
	case similarity >= 0.70:
		return TierLow
	default:
		return TierWeak
	}
}

// TierOf returns the tier of a candidate, TierNone when it has no score.
func TierOf(c catalog.Candidate) Tier {
	if c.Similarity == nil {
		return TierNone
	}
	return TierFor(*c.Similarity)
}

func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	case TierWeak:
		return "weak"
	default:
		return ""
	}
}

// Renderer lays out a result set for the terminal.
type Renderer struct {
	name   lipgloss.Style
	image  lipgloss.Style
	empty  lipgloss.Style
	badges map[Tier]lipgloss.Style
}

// NewRenderer builds a renderer with the default adaptive styles.
func NewRenderer() *Renderer {
	return &Renderer{
		name: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		image: lipgloss.NewStyle().Faint(true),
		empty: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
		badges: map[Tier]lipgloss.Style{
			TierHigh:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
			TierMedium: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#31748f"}),
			TierLow:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}),
			TierWeak:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		},
	}
}

// NoMatches is the literal empty-result message for a non-empty query.
func (r *Renderer) NoMatches(query string) string {
	return r.empty.Render(fmt.Sprintf("no matches for '%s'", query))
}

// Candidate renders one suggestion row: name, image reference (placeholder
// when absent) and a tier badge when the candidate carries a score.
func (r *Renderer) Candidate(c catalog.Candidate) string {
	image := c.ImageURL
	if image == "" {
		image = PlaceholderImage
	}

	row := fmt.Sprintf("%-32s %s", r.name.Render(c.Name), r.image.Render(image))
	if tier := TierOf(c); tier != TierNone {
		row += "  " + r.badges[tier].Render("["+tier.Label()+"]")
	}
	return row
}

// ResultSet renders the whole panel for a query.
func (r *Renderer) ResultSet(query string, results catalog.ResultSet) string {
	if len(results) == 0 {
		if query == "" {
			return ""
		}
		return r.NoMatches(query)
	}

	var b strings.Builder
	for i, c := range results {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, r.Candidate(c))
	}
	return strings.TrimRight(b.String(), "\n")
}
