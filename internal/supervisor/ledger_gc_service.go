// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package supervisor

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// LedgerGC matches the reward ledger's value log GC hook.
type LedgerGC interface {
	RunValueLogGC(discardRatio float64) error
}

// LedgerGCService periodically compacts the reward ledger's value log.
// Badger only reclaims space when GC is driven externally, so this runs
// for the life of the process under the data-layer supervisor.
type LedgerGCService struct {
	ledger       LedgerGC
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// NewLedgerGCService creates the GC service. Zero values select one
// round every 10 minutes at Badger's recommended 0.5 discard ratio.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLedgerGCService(ledger LedgerGC, interval time.Duration, logger zerolog.Logger) *LedgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &LedgerGCService{
		ledger:       ledger,
		interval:     interval,
		discardRatio: 0.5,
		logger:       logger.With().Str("component", "ledger-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *LedgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *LedgerGCService) runOnce() {
	// One call reclaims at most one value log file; loop until Badger
	// reports nothing left to rewrite.
	for {
		err := s.ledger.RunValueLogGC(s.discardRatio)
		if err == nil {
			s.logger.Debug().Msg("value log file reclaimed")
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return
		}
		s.logger.Warn().Err(err).Msg("value log GC failed")
		return
	}
}

// String identifies the service in supervisor logs.
func (s *LedgerGCService) String() string {
	return "ledger-gc"
}
