// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package reward

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trustgraph/internal/trust"
)

// fakeSocial provides endorsements and reputations for calculator tests.
type fakeSocial struct {
	endorsers   map[string][]string
	reputations map[string]float64
	listErr     error
}

func (f *fakeSocial) ListEndorsers(_ context.Context, contentID string) ([]trust.Endorsement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids, ok := f.endorsers[contentID]
	if !ok {
		return nil, trust.ErrUnknownContent
	}
	out := make([]trust.Endorsement, len(ids))
	for i, id := range ids {
		out[i] = trust.Endorsement{UserID: id, Timestamp: time.Now()}
	}
	return out, nil
}

func (f *fakeSocial) GetReputation(_ context.Context, userID string) (float64, error) {
	rep, ok := f.reputations[userID]
	if !ok {
		return 0, trust.ErrUnknownUser
	}
	return rep, nil
}

func (f *fakeSocial) GetVerificationTier(_ context.Context, userID string) (trust.Tier, error) {
	if _, ok := f.reputations[userID]; !ok {
		return "", trust.ErrUnknownUser
	}
	return trust.TierBasic, nil
}

func newTestCalculator(t *testing.T, social *fakeSocial) *Calculator {
	t.Helper()
	return NewCalculator(social, social, newTestLedger(t), zerolog.Nop())
}

func TestComputeRewardMultiplier(t *testing.T) {
	social := &fakeSocial{
		endorsers:   map[string][]string{"c1": {"a", "b"}},
		reputations: map[string]float64{"a": 1.0, "b": 0.5},
	}
	c := newTestCalculator(t, social)

	calc, err := c.ComputeReward(context.Background(), "c1", 100, "ev1")
	if err != nil {
		t.Fatal(err)
	}

	if calc.Multiplier != 1.5 {
		t.Errorf("multiplier = %v, want 1.5", calc.Multiplier)
	}
	if calc.Total != 150 {
		t.Errorf("total = %v, want 150", calc.Total)
	}
}

func TestComputeRewardCap(t *testing.T) {
	social := &fakeSocial{
		endorsers:   map[string][]string{"c1": {"a", "b", "c", "d", "e"}},
		reputations: map[string]float64{"a": 1, "b": 1, "c": 1, "d": 1, "e": 1},
	}
	c := newTestCalculator(t, social)

	calc, err := c.ComputeReward(context.Background(), "c1", 10, "ev1")
	if err != nil {
		t.Fatal(err)
	}

	if calc.Multiplier != 3.0 {
		t.Errorf("multiplier = %v, want capped 3.0", calc.Multiplier)
	}
	if calc.Total != 30 {
		t.Errorf("total = %v, want 30", calc.Total)
	}
}

func TestComputeRewardNoEndorsers(t *testing.T) {
	social := &fakeSocial{
		endorsers:   map[string][]string{"c1": {}},
		reputations: map[string]float64{},
	}
	c := newTestCalculator(t, social)

	calc, err := c.ComputeReward(context.Background(), "c1", 100, "ev1")
	if err != nil {
		t.Fatal(err)
	}
	if calc.Multiplier != 0 || calc.Total != 0 {
		t.Errorf("reward without endorsers = %v * %v, want zero", calc.Multiplier, calc.Total)
	}
}

func TestComputeRewardUnknownContent(t *testing.T) {
	social := &fakeSocial{endorsers: map[string][]string{}, reputations: map[string]float64{}}
	c := newTestCalculator(t, social)

	_, err := c.ComputeReward(context.Background(), "ghost", 100, "ev1")
	if !errors.Is(err, trust.ErrUnknownContent) {
		t.Errorf("expected ErrUnknownContent, got %v", err)
	}
}

func TestComputeRewardSnapshotSemantics(t *testing.T) {
	// A second request for the same event after trust state changed must
	// return the original snapshot, not a recomputation.
	social := &fakeSocial{
		endorsers:   map[string][]string{"c1": {"a"}},
		reputations: map[string]float64{"a": 1.0, "b": 1.0},
	}
	c := newTestCalculator(t, social)
	ctx := context.Background()

	first, err := c.ComputeReward(ctx, "c1", 100, "ev1")
	if err != nil {
		t.Fatal(err)
	}
	if first.Total != 100 {
		t.Fatalf("setup: total = %v", first.Total)
	}

	social.endorsers["c1"] = append(social.endorsers["c1"], "b")

	second, err := c.ComputeReward(ctx, "c1", 100, "ev1")
	if err != nil {
		t.Fatal(err)
	}
	if second.Total != 100 {
		t.Errorf("re-issued total = %v, want snapshot 100", second.Total)
	}
}

func TestComputeRewardConcurrentSameEvent(t *testing.T) {
	social := &fakeSocial{
		endorsers:   map[string][]string{"c1": {"a"}},
		reputations: map[string]float64{"a": 0.8},
	}
	c := newTestCalculator(t, social)

	const goroutines = 12
	totals := make([]float64, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			calc, err := c.ComputeReward(context.Background(), "c1", 100, "race")
			if err != nil {
				t.Errorf("compute: %v", err)
				return
			}
			totals[n] = calc.Total
		}(i)
	}
	wg.Wait()

	for i, total := range totals {
		if total != 80 {
			t.Errorf("goroutine %d total = %v, want identical 80", i, total)
		}
	}

	got, err := c.GetReward(context.Background(), "race")
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 80 {
		t.Errorf("ledger total = %v, want 80", got.Total)
	}
}
