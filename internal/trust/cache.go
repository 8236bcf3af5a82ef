// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"sync"
)

// cacheKey identifies one memoized computation.
type cacheKey struct {
	viewerID  string
	contentID string
}

// cacheEntry is a node in the LRU list. The stored result is immutable;
// invalidation removes entries, it never rewrites them in place, so a
// concurrent reader either sees a complete result or a miss.
type cacheEntry struct {
	key    cacheKey
	result *TrustScoreResult
	prev   *cacheEntry
	next   *cacheEntry
}

// Cache memoizes (viewer, content) trust score results.
//
// There is no TTL: an entry is either valid for the current graph state
// or evicted by an invalidation hook. A capacity bound with LRU eviction
// keeps memory flat; the doubly-linked list gives O(1) Get, Add, and
// eviction. Secondary indexes by viewer and by content make the coarse
// invalidation contract O(entries touched) instead of a full scan.
type Cache struct {
	mu sync.RWMutex

	capacity int

	// epoch advances on every invalidation. A fill computed before the
	// current epoch is dropped, so an invalidation that lands while the
	// result is being computed is never lost.
	epoch uint64

	// items maps keys to list nodes for O(1) lookup.
	items map[cacheKey]*cacheEntry

	// byViewer and byContent index live keys for invalidation.
	byViewer  map[string]map[cacheKey]struct{}
	byContent map[string]map[cacheKey]struct{}

	// head and tail are sentinel nodes; head.next is most recently used.
	head *cacheEntry
	tail *cacheEntry

	hits   int64
	misses int64
}

// DefaultCacheCapacity bounds the cache when no capacity is configured.
const DefaultCacheCapacity = 16384

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}

	c := &Cache{
		capacity:  capacity,
		items:     make(map[cacheKey]*cacheEntry, capacity),
		byViewer:  make(map[string]map[cacheKey]struct{}),
		byContent: make(map[string]map[cacheKey]struct{}),
		head:      &cacheEntry{},
		tail:      &cacheEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached result for (viewer, content), or nil on miss.
func (c *Cache) Get(viewerID, contentID string) *TrustScoreResult {
	key := cacheKey{viewerID: viewerID, contentID: contentID}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return nil
	}
	c.moveToFront(entry)
	c.hits++
	return entry.result
}

// Epoch returns the current invalidation epoch. Callers read the epoch
// before computing a result and pass it back to Add.
func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// Add stores a result computed at the given epoch, replacing any
// existing entry for the same key and evicting the least recently used
// entry when at capacity. When an invalidation has advanced the epoch
// since it was read the fill is dropped, so a result computed from
// pre-mutation state can never outlive the eviction meant to remove it.
// Reports whether the result was stored.
func (c *Cache) Add(result *TrustScoreResult, epoch uint64) bool {
	key := cacheKey{viewerID: result.ViewerID, contentID: result.ContentID}

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return false
	}

	if entry, ok := c.items[key]; ok {
		// Atomic pointer swap of the immutable result.
		entry.result = result
		c.moveToFront(entry)
		return true
	}

	if len(c.items) >= c.capacity {
		c.removeLocked(c.tail.prev.key)
	}

	entry := &cacheEntry{key: key, result: result}
	c.items[key] = entry
	c.pushFront(entry)
	indexAdd(c.byViewer, key.viewerID, key)
	indexAdd(c.byContent, key.contentID, key)
	return true
}

// InvalidateContent evicts every cached entry for the content item.
// Called whenever the content's endorser set changes. The epoch
// advances even when no entries match, so an in-flight fill for the
// content cannot slip in behind the eviction.
func (c *Cache) InvalidateContent(contentID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	return c.invalidateIndexLocked(c.byContent, contentID)
}

// InvalidateViewer evicts every cached entry for the viewer.
// Called whenever the viewer's own follow set changes.
func (c *Cache) InvalidateViewer(viewerID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	return c.invalidateIndexLocked(c.byViewer, viewerID)
}

// Purge evicts all entries. Used when a change affects an unbounded set
// of cached results, e.g. an endorser's reputation changing.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	n := len(c.items)
	c.items = make(map[cacheKey]*cacheEntry, c.capacity)
	c.byViewer = make(map[string]map[cacheKey]struct{})
	c.byContent = make(map[string]map[cacheKey]struct{})
	c.head.next = c.tail
	c.tail.prev = c.head
	return n
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// invalidateIndexLocked removes every entry listed under index[id].
func (c *Cache) invalidateIndexLocked(index map[string]map[cacheKey]struct{}, id string) int {
	keys := index[id]
	n := len(keys)
	for key := range keys {
		c.removeLocked(key)
	}
	return n
}

// removeLocked unlinks an entry and drops it from all indexes.
func (c *Cache) removeLocked(key cacheKey) {
	entry, ok := c.items[key]
	if !ok {
		return
	}
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, key)
	indexRemove(c.byViewer, key.viewerID, key)
	indexRemove(c.byContent, key.contentID, key)
}

func (c *Cache) pushFront(entry *cacheEntry) {
	entry.next = c.head.next
	entry.prev = c.head
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *Cache) moveToFront(entry *cacheEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.pushFront(entry)
}

func indexAdd(index map[string]map[cacheKey]struct{}, id string, key cacheKey) {
	set, ok := index[id]
	if !ok {
		set = make(map[cacheKey]struct{})
		index[id] = set
	}
	set[key] = struct{}{}
}

func indexRemove(index map[string]map[cacheKey]struct{}, id string, key cacheKey) {
	set, ok := index[id]
	if !ok {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(index, id)
	}
}
