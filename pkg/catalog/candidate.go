// Package catalog holds the product data model and the search seam used by
// every frontend: the trie-backed local index, the remote HTTP client and the
// IPC server all speak through the Searcher interface defined here.
package catalog

import "context"

// Candidate is one search-result entry returned for a query. Immutable once
// received; ordering inside a ResultSet is decided by the producing backend.
type Candidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"image_url,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// ResultSet is the ordered candidate list for a single query string.
type ResultSet []Candidate

// Options narrows a search request.
type Options struct {
	// Limit caps the number of returned candidates. Zero means backend default.
	Limit int
	// MinSimilarity drops candidates scored below the threshold.
	MinSimilarity float64
}

// Searcher is implemented by every search backend.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) (ResultSet, error)
}

// Detailer resolves a canonical name (or synonym) to the full product record
// backing the per-item detail view.
type Detailer interface {
	Detail(ctx context.Context, name string) (Product, error)
}

// Score wraps a similarity value for the optional Candidate field.
func Score(v float64) *float64 {
	return &v
}
