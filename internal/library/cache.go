package library

import "sync"

// MetadataCache memoises extracted document metadata keyed by file path. It
// is a pure optimisation: a hit must be equivalent to recomputation. The
// cache is injected into the Library so tests can substitute a fresh one.
type MetadataCache struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMetadataCache returns an empty cache.
func NewMetadataCache() *MetadataCache {
	return &MetadataCache{docs: make(map[string]Document)}
}

// Get returns the cached document for path, if present.
func (c *MetadataCache) Get(path string) (Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[path]
	return doc, ok
}

// Put stores the document for path. Concurrent racing writers may recompute
// redundantly; the result is idempotent so last-write-wins is fine.
func (c *MetadataCache) Put(path string, doc Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[path] = doc
}

// Clear drops every entry. Callers clear the cache when the extraction
// heuristics themselves change, so stale titles cannot survive a logic
// change.
func (c *MetadataCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = make(map[string]Document)
}

// Len returns the number of cached entries.
func (c *MetadataCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}
