// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func newTestEngine(p *fakeProvider) *Engine {
	return NewEngine(p, DefaultEngineConfig(), zerolog.Nop())
}

func TestEngineCachesResults(t *testing.T) {
	p := newFakeProvider()
	p.addUser("viewer", 0.5)
	p.addUser("e", 1.0)
	p.addContent("c1", 5.0, TierBasic)
	p.follow("viewer", "e")
	p.endorse("c1", "e")

	e := newTestEngine(p)
	ctx := context.Background()

	first, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("second call should return the cached result object")
	}

	m := e.Metrics()
	if m.CacheHits != 1 || m.CacheMisses != 1 {
		t.Errorf("cache stats = %d/%d, want 1 hit / 1 miss", m.CacheHits, m.CacheMisses)
	}
}

func TestEngineEndorsementInvalidation(t *testing.T) {
	// After OnEndorsementChanged the next call must reflect the new
	// endorser set, not a stale cache hit.
	p := newFakeProvider()
	p.addUser("viewer", 0.5)
	p.addUser("e1", 1.0)
	p.addUser("e2", 1.0)
	p.addContent("c1", 5.0, TierBasic)
	p.follow("viewer", "e1", "e2")
	p.endorse("c1", "e1")

	e := newTestEngine(p)
	ctx := context.Background()

	before, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(before.SocialMultiplier, 0.75) {
		t.Fatalf("setup: multiplier = %v", before.SocialMultiplier)
	}

	p.endorse("c1", "e2")
	e.OnEndorsementChanged("c1")

	after, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(after.SocialMultiplier, 1.5) {
		t.Errorf("post-invalidation multiplier = %v, want 1.5", after.SocialMultiplier)
	}
}

func TestEngineFollowGraphInvalidation(t *testing.T) {
	p := newFakeProvider()
	p.addUser("viewer", 0.5)
	p.addUser("e", 1.0)
	p.addContent("c1", 5.0, TierBasic)
	p.endorse("c1", "e")

	e := newTestEngine(p)
	ctx := context.Background()

	// No path yet: fallback branch.
	before, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if before.SocialMultiplier != 0 {
		t.Fatalf("setup: multiplier = %v", before.SocialMultiplier)
	}

	p.follow("viewer", "e")
	e.OnFollowGraphChanged("viewer")

	after, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(after.SocialMultiplier, 0.75) {
		t.Errorf("post-follow multiplier = %v, want 0.75", after.SocialMultiplier)
	}
}

func TestEngineReputationPurge(t *testing.T) {
	p := newFakeProvider()
	p.addUser("viewer", 0.5)
	p.addUser("e", 1.0)
	p.addContent("c1", 5.0, TierBasic)
	p.follow("viewer", "e")
	p.endorse("c1", "e")

	e := newTestEngine(p)
	ctx := context.Background()

	if _, err := e.ComputeTrustScore(ctx, "viewer", "c1"); err != nil {
		t.Fatal(err)
	}

	p.reputations["e"] = 0.4
	e.OnReputationChanged("e")

	after, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(after.SocialMultiplier, 0.3) {
		t.Errorf("post-reputation multiplier = %v, want 0.3", after.SocialMultiplier)
	}
}

func TestEngineConcurrentScoring(t *testing.T) {
	p := newFakeProvider()
	p.addUser("e", 1.0)
	p.addContent("c1", 5.0, TierBasic)
	p.endorse("c1", "e")
	viewers := []string{"v0", "v1", "v2", "v3"}
	for _, v := range viewers {
		p.addUser(v, 0.5)
		p.follow(v, "e")
	}

	e := newTestEngine(p)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v := viewers[(n+j)%len(viewers)]
				r, err := e.ComputeTrustScore(context.Background(), v, "c1")
				if err != nil {
					t.Errorf("compute: %v", err)
					return
				}
				if !almostEqual(r.SocialMultiplier, 0.75) {
					t.Errorf("multiplier = %v, want 0.75", r.SocialMultiplier)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

// gatedProvider parks the first ListEndorsers call after it has read the
// underlying state, letting a test mutate the provider and invalidate
// while a computation is in flight.
type gatedProvider struct {
	*fakeProvider
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *gatedProvider) ListEndorsers(ctx context.Context, contentID string) ([]Endorsement, error) {
	endorsers, err := p.fakeProvider.ListEndorsers(ctx, contentID)
	p.once.Do(func() {
		p.entered <- struct{}{}
		<-p.release
	})
	return endorsers, err
}

func TestEngineInvalidationDuringComputation(t *testing.T) {
	// An invalidation that lands between the calculator's reads and the
	// cache fill must win: the pre-mutation result may be returned to
	// its own caller but must not be cached.
	p := newFakeProvider()
	p.addUser("viewer", 0.5)
	p.addUser("e1", 1.0)
	p.addUser("e2", 1.0)
	p.addContent("c1", 5.0, TierBasic)
	p.follow("viewer", "e1", "e2")
	p.endorse("c1", "e1")

	gated := &gatedProvider{
		fakeProvider: p,
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	e := NewEngine(gated, DefaultEngineConfig(), zerolog.Nop())
	ctx := context.Background()

	type outcome struct {
		result *TrustScoreResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := e.ComputeTrustScore(ctx, "viewer", "c1")
		done <- outcome{result: r, err: err}
	}()

	<-gated.entered
	p.endorse("c1", "e2")
	e.OnEndorsementChanged("c1")
	close(gated.release)

	first := <-done
	if first.err != nil {
		t.Fatal(first.err)
	}
	if !almostEqual(first.result.SocialMultiplier, 0.75) {
		t.Fatalf("in-flight multiplier = %v, want pre-mutation 0.75", first.result.SocialMultiplier)
	}

	after, err := e.ComputeTrustScore(ctx, "viewer", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(after.SocialMultiplier, 1.5) {
		t.Errorf("post-invalidation multiplier = %v, want 1.5", after.SocialMultiplier)
	}
}
