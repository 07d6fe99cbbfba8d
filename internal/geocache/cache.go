// Package geocache holds the session-scoped set of known stations keyed
// by id. Merges are commutative and idempotent, so overlapping viewport
// fetches can land in any order.
package geocache

import (
	"sync"

	"fuelsmart/internal/station"
)

type Cache struct {
	mu      sync.RWMutex
	records map[string]station.Record
}

func New() *Cache {
	return &Cache{records: make(map[string]station.Record)}
}

// Merge unions incoming records into the cache, overwriting by id.
// Last write wins on id collision; there is no field-level merge.
func (c *Cache) Merge(incoming []station.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range incoming {
		if rec.ID == "" {
			continue
		}
		c.records[rec.ID] = rec.Clone()
	}
}

// All returns a snapshot copy, safe to filter and sort without touching
// cached state.
func (c *Cache) All() []station.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]station.Record, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, rec.Clone())
	}
	return out
}

func (c *Cache) Get(id string) (station.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return station.Record{}, false
	}
	return rec.Clone(), true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Remove drops a single record. Not used by the merge flow; the cache
// never evicts during a session.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, id)
}

// Dispose clears the cache at the end of a session.
func (c *Cache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string]station.Record)
}
