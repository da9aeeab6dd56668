package persist

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"slotkv/bptree"
)

// Cache fronts a Pager with a bounded, cost-aware page cache backed by
// ristretto, replacing the teacher's hand-rolled LRU BufferPool
// (bplustree/buffer_pool.go): ristretto tracks hit-ratio-weighted
// admission and eviction itself instead of a manually walked
// access-order slice, and is safe for concurrent use without Cache
// taking its own lock.
type Cache struct {
	pager Pager
	ring  *ristretto.Cache[bptree.PageID, []byte]
}

// NewCache wraps pager with a cache holding up to maxPages pages.
func NewCache(pager Pager, maxPages int64) (*Cache, error) {
	ring, err := ristretto.NewCache(&ristretto.Config[bptree.PageID, []byte]{
		NumCounters: maxPages * 10,
		MaxCost:     maxPages,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("persist: create cache: %w", err)
	}
	return &Cache{pager: pager, ring: ring}, nil
}

// Get returns a page's bytes, populating the cache on a pager read.
func (c *Cache) Get(id bptree.PageID) ([]byte, error) {
	if data, ok := c.ring.Get(id); ok {
		return data, nil
	}
	data, err := c.pager.ReadPage(id)
	if err != nil {
		return nil, err
	}
	c.ring.Set(id, data, 1)
	return data, nil
}

// Put writes a page through to the pager and refreshes the cache entry.
func (c *Cache) Put(id bptree.PageID, data []byte) error {
	if err := c.pager.WritePage(id, data); err != nil {
		return err
	}
	c.ring.Set(id, data, 1)
	return nil
}

// Evict drops id from the cache without touching the underlying pager.
func (c *Cache) Evict(id bptree.PageID) {
	c.ring.Del(id)
}

// Close flushes pending ristretto writes and closes the underlying pager.
func (c *Cache) Close() error {
	c.ring.Close()
	return c.pager.Close()
}
