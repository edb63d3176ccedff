package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrNotFound is returned by Detail for names the index does not know.
var ErrNotFound = errors.New("catalog: product not found")

// Index is an in-memory prefix index over product names and synonyms.
// It backs the bundled HTTP endpoint, the demo/offline mode and the tests.
type Index struct {
	mu       sync.RWMutex
	trie     *patricia.Trie
	products []Product
	byName   map[string]int
}

type trieEntry struct {
	product int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		trie:   patricia.NewTrie(),
		byName: make(map[string]int),
	}
}

// BuildIndex indexes the given products.
func BuildIndex(products []Product) *Index {
	ix := NewIndex()
	for _, p := range products {
		ix.Add(p)
	}
	return ix
}

// Add inserts a product under its canonical name and every synonym.
// Keys are matched case-insensitively; on key collision the later product wins.
func (ix *Index) Add(p Product) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := len(ix.products)
	ix.products = append(ix.products, p)

	keys := append([]string{p.Name}, p.Synonyms...)
	for _, key := range keys {
		lower := strings.ToLower(strings.TrimSpace(key))
		if lower == "" {
			continue
		}
		ix.byName[lower] = id
		ix.trie.Set(patricia.Prefix(lower), &trieEntry{product: id})
	}
}

// Len reports the number of indexed products.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.products)
}

// Search walks the subtree under the lowercased query and scores each hit by
// prefix coverage: an exact key match scores 1.0, a key twice as long as the
// query scores 0.5. A product reachable through several keys keeps its best
// score. Results are ordered by similarity, then popularity, then name.
// When nothing matches by prefix, a bounded edit-distance fallback catches
// single-typo queries (see fuzzy.go).
func (ix *Index) Search(ctx context.Context, query string, opts Options) (ResultSet, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	best := make(map[int]float64)
	err := ix.trie.VisitSubtree(patricia.Prefix(q), func(p patricia.Prefix, item patricia.Item) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry, ok := item.(*trieEntry)
		if !ok {
			log.Errorf("Unknown item type: %T for key %s", item, p)
			return nil
		}

		sim := float64(len(q)) / float64(len(p))
		if sim > 1 {
			sim = 1
		}
		if prev, seen := best[entry.product]; !seen || sim > prev {
			best[entry.product] = sim
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(best) == 0 {
		best = ix.fuzzySearch(q)
	}

	type scored struct {
		product int
		sim     float64
	}
	hits := make([]scored, 0, len(best))
	for id, sim := range best {
		if sim < opts.MinSimilarity {
			continue
		}
		hits = append(hits, scored{product: id, sim: sim})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].sim != hits[j].sim {
			return hits[i].sim > hits[j].sim
		}
		pi, pj := ix.products[hits[i].product], ix.products[hits[j].product]
		if pi.Popularity != pj.Popularity {
			return pi.Popularity > pj.Popularity
		}
		return pi.Name < pj.Name
	})

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	results := make(ResultSet, 0, len(hits))
	for _, h := range hits {
		results = append(results, ix.products[h.product].Candidate(h.sim))
	}
	return results, nil
}

// Detail resolves a canonical name or synonym, case-insensitively.
func (ix *Index) Detail(_ context.Context, name string) (Product, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	id, ok := ix.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Product{}, ErrNotFound
	}
	return ix.products[id], nil
}
