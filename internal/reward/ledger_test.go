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
)

func newTestLedger(t *testing.T) *BadgerLedger {
	t.Helper()
	l, err := NewBadgerLedger("") // in-memory
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() {
		if err := l.Close(); err != nil {
			t.Errorf("close ledger: %v", err)
		}
	})
	return l
}

func TestLedgerIssueAndGet(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	calc := &Calculation{
		EventID:    "c1:endorsements:10",
		ContentID:  "c1",
		BaseReward: 100,
		Multiplier: 1.5,
		Total:      150,
		IssuedAt:   time.Now().UTC(),
	}

	stored, existing, err := l.Issue(ctx, calc)
	if err != nil {
		t.Fatal(err)
	}
	if existing {
		t.Error("first issue should not report existing")
	}
	if stored.Total != 150 {
		t.Errorf("total = %v, want 150", stored.Total)
	}

	got, err := l.Get(ctx, calc.EventID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 150 || got.ContentID != "c1" {
		t.Errorf("got %+v", got)
	}
}

func TestLedgerGetMissing(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.Get(context.Background(), "nope")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestLedgerIssueIdempotent(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	first := &Calculation{EventID: "ev1", ContentID: "c1", BaseReward: 100, Multiplier: 2, Total: 200}
	if _, _, err := l.Issue(ctx, first); err != nil {
		t.Fatal(err)
	}

	// Second attempt with different amounts must return the original.
	second := &Calculation{EventID: "ev1", ContentID: "c1", BaseReward: 999, Multiplier: 3, Total: 2997}
	stored, existing, err := l.Issue(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	if !existing {
		t.Error("second issue should report existing")
	}
	if stored.Total != 200 {
		t.Errorf("total = %v, want the originally issued 200", stored.Total)
	}
}

func TestLedgerConcurrentIssueAtMostOnce(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	const goroutines = 16
	results := make([]*Calculation, goroutines)
	var newlyIssued sync.Map
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			calc := &Calculation{
				EventID:    "race",
				ContentID:  "c1",
				BaseReward: 50,
				Multiplier: 1,
				Total:      50,
				IssuedAt:   time.Now().UTC(),
			}
			stored, existing, err := l.Issue(ctx, calc)
			if err != nil {
				t.Errorf("issue: %v", err)
				return
			}
			results[n] = stored
			if !existing {
				newlyIssued.Store(n, true)
			}
		}(i)
	}
	wg.Wait()

	var fresh int
	newlyIssued.Range(func(_, _ any) bool {
		fresh++
		return true
	})
	if fresh != 1 {
		t.Errorf("%d goroutines issued a fresh entry, want exactly 1", fresh)
	}

	for i, r := range results {
		if r == nil {
			continue
		}
		if r.Total != 50 {
			t.Errorf("goroutine %d observed total %v, want 50", i, r.Total)
		}
	}
}
