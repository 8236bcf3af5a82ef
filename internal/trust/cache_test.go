// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"fmt"
	"sync"
	"testing"
)

func makeResult(viewerID, contentID string, score float64) *TrustScoreResult {
	return &TrustScoreResult{
		ViewerID:   viewerID,
		ContentID:  contentID,
		TrustScore: score,
	}
}

func TestCacheGetAdd(t *testing.T) {
	c := NewCache(10)

	if got := c.Get("v1", "c1"); got != nil {
		t.Errorf("expected miss, got %+v", got)
	}

	c.Add(makeResult("v1", "c1", 3.75), c.Epoch())
	got := c.Get("v1", "c1")
	if got == nil {
		t.Fatal("expected hit")
	}
	if got.TrustScore != 3.75 {
		t.Errorf("cached score = %v, want 3.75", got.TrustScore)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d/%d, want 1/1", hits, misses)
	}
}

func TestCacheReplaceExisting(t *testing.T) {
	c := NewCache(10)
	c.Add(makeResult("v1", "c1", 1.0), c.Epoch())
	c.Add(makeResult("v1", "c1", 2.0), c.Epoch())

	if got := c.Get("v1", "c1"); got.TrustScore != 2.0 {
		t.Errorf("score = %v, want replacement value 2.0", got.TrustScore)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := NewCache(2)
	c.Add(makeResult("v1", "c1", 1), c.Epoch())
	c.Add(makeResult("v2", "c1", 2), c.Epoch())

	// Touch v1/c1 so v2/c1 becomes least recently used.
	c.Get("v1", "c1")
	c.Add(makeResult("v3", "c1", 3), c.Epoch())

	if c.Get("v2", "c1") != nil {
		t.Error("expected v2/c1 to be evicted")
	}
	if c.Get("v1", "c1") == nil {
		t.Error("expected v1/c1 to survive")
	}
	if c.Get("v3", "c1") == nil {
		t.Error("expected v3/c1 to be present")
	}
}

func TestCacheInvalidateContent(t *testing.T) {
	c := NewCache(10)
	c.Add(makeResult("v1", "c1", 1), c.Epoch())
	c.Add(makeResult("v2", "c1", 2), c.Epoch())
	c.Add(makeResult("v1", "c2", 3), c.Epoch())

	n := c.InvalidateContent("c1")
	if n != 2 {
		t.Errorf("invalidated %d entries, want 2", n)
	}
	if c.Get("v1", "c1") != nil || c.Get("v2", "c1") != nil {
		t.Error("c1 entries should be evicted")
	}
	if c.Get("v1", "c2") == nil {
		t.Error("c2 entry should survive")
	}
}

func TestCacheInvalidateViewer(t *testing.T) {
	c := NewCache(10)
	c.Add(makeResult("v1", "c1", 1), c.Epoch())
	c.Add(makeResult("v1", "c2", 2), c.Epoch())
	c.Add(makeResult("v2", "c1", 3), c.Epoch())

	n := c.InvalidateViewer("v1")
	if n != 2 {
		t.Errorf("invalidated %d entries, want 2", n)
	}
	if c.Get("v1", "c1") != nil || c.Get("v1", "c2") != nil {
		t.Error("v1 entries should be evicted")
	}
	if c.Get("v2", "c1") == nil {
		t.Error("v2 entry should survive")
	}
}

func TestCachePurge(t *testing.T) {
	c := NewCache(10)
	c.Add(makeResult("v1", "c1", 1), c.Epoch())
	c.Add(makeResult("v2", "c2", 2), c.Epoch())

	if n := c.Purge(); n != 2 {
		t.Errorf("purged %d, want 2", n)
	}
	if c.Len() != 0 {
		t.Errorf("len after purge = %d, want 0", c.Len())
	}

	// Cache must remain usable after purge.
	c.Add(makeResult("v1", "c1", 5), c.Epoch())
	if c.Get("v1", "c1") == nil {
		t.Error("expected hit after purge and re-add")
	}
}

func TestCacheAddDroppedAfterInvalidation(t *testing.T) {
	c := NewCache(10)

	// An invalidation between reading the epoch and filling must drop
	// the fill, even when the cache held no entry for the key.
	epoch := c.Epoch()
	c.InvalidateContent("c1")
	if c.Add(makeResult("v1", "c1", 1), epoch) {
		t.Error("fill stored despite intervening content invalidation")
	}
	if c.Get("v1", "c1") != nil {
		t.Error("stale fill is retrievable")
	}

	epoch = c.Epoch()
	c.InvalidateViewer("v1")
	if c.Add(makeResult("v1", "c1", 1), epoch) {
		t.Error("fill stored despite intervening viewer invalidation")
	}

	epoch = c.Epoch()
	c.Purge()
	if c.Add(makeResult("v1", "c1", 1), epoch) {
		t.Error("fill stored despite intervening purge")
	}

	// A fill at the current epoch goes through.
	if !c.Add(makeResult("v1", "c1", 2), c.Epoch()) {
		t.Fatal("fresh fill rejected")
	}
	if got := c.Get("v1", "c1"); got == nil || got.TrustScore != 2 {
		t.Errorf("fresh fill not retrievable: %+v", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(128)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				viewer := fmt.Sprintf("v%d", j%10)
				content := fmt.Sprintf("c%d", j%5)
				switch j % 4 {
				case 0:
					c.Add(makeResult(viewer, content, float64(j)), c.Epoch())
				case 1:
					if r := c.Get(viewer, content); r != nil {
						// A reader must never observe a half-written entry.
						if r.ViewerID != viewer || r.ContentID != content {
							t.Errorf("torn read: got %s/%s want %s/%s",
								r.ViewerID, r.ContentID, viewer, content)
						}
					}
				case 2:
					c.InvalidateContent(content)
				case 3:
					c.InvalidateViewer(viewer)
				}
			}
		}(i)
	}
	wg.Wait()
}
