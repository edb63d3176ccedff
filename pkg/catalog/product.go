package catalog

// Product is a full catalog record as loaded from the catalog file.
type Product struct {
	ID         string   `toml:"id" json:"id"`
	Name       string   `toml:"name" json:"name"`
	Synonyms   []string `toml:"synonyms" json:"synonyms,omitempty"`
	ImageURL   string   `toml:"image_url" json:"image_url,omitempty"`
	Summary    string   `toml:"summary" json:"summary,omitempty"`
	Popularity int      `toml:"popularity" json:"popularity"`
}

// Candidate projects the product into a search-result entry with the given
// similarity score.
func (p Product) Candidate(similarity float64) Candidate {
	return Candidate{
		ID:         p.ID,
		Name:       p.Name,
		ImageURL:   p.ImageURL,
		Similarity: Score(similarity),
	}
}
