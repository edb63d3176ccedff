package search

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

// ResultCache memoizes result sets by exact query string. Entries never
// expire; the cache lives and dies with the owning Component instance.
type ResultCache struct {
	entries *gocache.Cache
}

// NewResultCache returns an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the cached result set for the exact query string, if any.
func (rc *ResultCache) Get(query string) (catalog.ResultSet, bool) {
	v, ok := rc.entries.Get(query)
	if !ok {
		return nil, false
	}
	return v.(catalog.ResultSet), true
}

// Put stores a result set. Only successful lookups should be inserted.
func (rc *ResultCache) Put(query string, results catalog.ResultSet) {
	rc.entries.Set(query, results, gocache.NoExpiration)
}

// Len reports the number of cached queries.
func (rc *ResultCache) Len() int {
	return rc.entries.ItemCount()
}

// Purge drops every entry.
func (rc *ResultCache) Purge() {
	rc.entries.Flush()
}
