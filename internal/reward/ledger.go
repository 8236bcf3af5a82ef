// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Calculation is one immutable reward ledger entry.
type Calculation struct {
	// EventID identifies the triggering event, e.g. "c42:endorsements:10".
	EventID string `json:"eventId"`

	// ContentID is the content the reward applies to.
	ContentID string `json:"contentId"`

	// BaseReward is the uncapped token amount before social scaling.
	BaseReward float64 `json:"baseReward"`

	// Multiplier is the capped social multiplier applied, in [0, 3].
	Multiplier float64 `json:"multiplier"`

	// Total is BaseReward * Multiplier.
	Total float64 `json:"total"`

	// IssuedAt is when the entry was recorded.
	IssuedAt time.Time `json:"issuedAt"`
}

// ErrEventNotFound indicates no ledger entry exists for the event.
var ErrEventNotFound = errors.New("reward event not found")

// Ledger is the append-only store of issued reward calculations.
//
// Issue is the only write path and must be at-most-once per (content,
// eventID): concurrent issuance attempts for the same event resolve to a
// single stored entry, with later attempts receiving the existing one.
type Ledger interface {
	// Issue records calc unless an entry for its (content, event) key
	// already exists. Returns the stored entry and whether it pre-existed.
	Issue(ctx context.Context, calc *Calculation) (stored *Calculation, existing bool, err error)

	// Get returns the entry for an event ID, or ErrEventNotFound.
	Get(ctx context.Context, eventID string) (*Calculation, error)

	// Close releases ledger resources.
	Close() error
}

// BadgerLedger implements Ledger on BadgerDB. Badger's serializable
// transactions give the compare-and-set needed for at-most-once
// issuance: two racing Issue calls conflict, and the loser re-reads the
// winner's entry.
type BadgerLedger struct {
	db *badger.DB
}

// NewBadgerLedger opens a ledger at path. An empty path opens an
// in-memory ledger, used by tests and ephemeral deployments.
func NewBadgerLedger(path string) (*BadgerLedger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	// Badger logs through its own interface; silence it rather than
	// bridge it, ledger activity is logged at the caller.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open reward ledger: %w", err)
	}
	return &BadgerLedger{db: db}, nil
}

// ledgerKey builds the storage key for an event.
func ledgerKey(eventID string) []byte {
	return []byte("reward/" + eventID)
}

// Issue implements Ledger.
func (l *BadgerLedger) Issue(ctx context.Context, calc *Calculation) (*Calculation, bool, error) {
	key := ledgerKey(calc.EventID)

	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		var existing *Calculation
		err := l.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			switch {
			case err == nil:
				return item.Value(func(val []byte) error {
					existing = &Calculation{}
					return json.Unmarshal(val, existing)
				})
			case errors.Is(err, badger.ErrKeyNotFound):
				payload, err := json.Marshal(calc)
				if err != nil {
					return err
				}
				return txn.Set(key, payload)
			default:
				return err
			}
		})

		switch {
		case err == nil:
			if existing != nil {
				return existing, true, nil
			}
			return calc, false, nil
		case errors.Is(err, badger.ErrConflict):
			// Lost the race; retry to read the winner's entry.
			continue
		default:
			return nil, false, fmt.Errorf("issue reward %s: %w", calc.EventID, err)
		}
	}
}

// Get implements Ledger.
func (l *BadgerLedger) Get(_ context.Context, eventID string) (*Calculation, error) {
	var calc *Calculation
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(ledgerKey(eventID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEventNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			calc = &Calculation{}
			return json.Unmarshal(val, calc)
		})
	})
	if err != nil {
		return nil, err
	}
	return calc, nil
}

// RunValueLogGC runs one round of Badger value log garbage collection.
// Returns badger.ErrNoRewrite when there was nothing to reclaim and
// badger.ErrGCInMemoryMode for in-memory ledgers; callers treat both as
// a clean no-op.
func (l *BadgerLedger) RunValueLogGC(discardRatio float64) error {
	return l.db.RunValueLogGC(discardRatio)
}

// Close implements Ledger.
func (l *BadgerLedger) Close() error {
	return l.db.Close()
}
