// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trustgraph/internal/metrics"
)

// EngineConfig holds engine tuning parameters.
type EngineConfig struct {
	// CacheCapacity is the maximum number of memoized (viewer, content)
	// results. Default: DefaultCacheCapacity.
	CacheCapacity int `json:"cache_capacity" koanf:"cache_capacity"`
}

// DefaultEngineConfig returns production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{CacheCapacity: DefaultCacheCapacity}
}

// Engine is the request-facing entry point for trust scoring. It checks
// the cache, delegates misses to the calculator, and exposes the
// invalidation hooks called by external mutation paths.
//
// Scoring is a pure read; distinct (viewer, content) pairs may be scored
// fully in parallel. The cache is the only shared mutable state and is
// internally synchronized. Engine is safe for concurrent use.
type Engine struct {
	calculator *Calculator
	cache      *Cache
	logger     zerolog.Logger

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates an engine over the given data provider.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(provider DataProvider, cfg EngineConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		calculator: NewCalculator(provider),
		cache:      NewCache(cfg.CacheCapacity),
		logger:     logger.With().Str("component", "trust-engine").Logger(),
	}
}

// ComputeTrustScore returns the trust score of contentID as seen by
// viewerID, serving from cache when the cached entry is still valid for
// the current graph state.
func (e *Engine) ComputeTrustScore(ctx context.Context, viewerID, contentID string) (*TrustScoreResult, error) {
	e.requestCount.Add(1)

	if cached := e.cache.Get(viewerID, contentID); cached != nil {
		e.cacheHits.Add(1)
		metrics.TrustCacheHits.Inc()
		return cached, nil
	}
	e.cacheMisses.Add(1)
	metrics.TrustCacheMisses.Inc()

	// Capture the epoch before the calculator reads the stores. An
	// invalidation landing mid-computation advances it and the fill
	// below is dropped instead of pinning pre-mutation state.
	epoch := e.cache.Epoch()

	start := time.Now()
	result, err := e.calculator.ComputeTrustScore(ctx, viewerID, contentID)
	if err != nil {
		e.errorCount.Add(1)
		metrics.TrustScoreErrors.Inc()
		return nil, err
	}
	metrics.TrustScoreDuration.Observe(time.Since(start).Seconds())
	metrics.TrustScoreComputations.WithLabelValues(branchLabel(result)).Inc()

	if !e.cache.Add(result, epoch) {
		e.logger.Debug().
			Str("viewer", viewerID).
			Str("content", contentID).
			Msg("fill dropped, invalidated during computation")
	}

	e.logger.Debug().
		Str("viewer", viewerID).
		Str("content", contentID).
		Float64("trust_score", result.TrustScore).
		Float64("social_multiplier", result.SocialMultiplier).
		Msg("trust score computed")

	return result, nil
}

// OnEndorsementChanged invalidates all cached scores for a content item.
// External mutation paths call this whenever the content's endorser set
// changes (endorsement added or removed).
func (e *Engine) OnEndorsementChanged(contentID string) {
	n := e.cache.InvalidateContent(contentID)
	metrics.TrustCacheInvalidations.WithLabelValues("content").Add(float64(n))
	e.logger.Debug().Str("content", contentID).Int("evicted", n).Msg("endorsement change invalidation")
}

// OnFollowGraphChanged invalidates all cached scores for a viewer.
// External mutation paths call this whenever the user's own follow set
// changes.
func (e *Engine) OnFollowGraphChanged(userID string) {
	n := e.cache.InvalidateViewer(userID)
	metrics.TrustCacheInvalidations.WithLabelValues("viewer").Add(float64(n))
	e.logger.Debug().Str("user", userID).Int("evicted", n).Msg("follow graph change invalidation")
}

// OnReputationChanged purges the whole cache. A reputation change
// affects every cached score the user contributed to as an endorser,
// which the (viewer, content) indexes cannot enumerate; recomputation is
// cheap, so the coarse purge is acceptable.
func (e *Engine) OnReputationChanged(userID string) {
	n := e.cache.Purge()
	metrics.TrustCacheInvalidations.WithLabelValues("reputation").Add(float64(n))
	e.logger.Debug().Str("user", userID).Int("evicted", n).Msg("reputation change purge")
}

// EngineMetrics is a snapshot of engine counters.
type EngineMetrics struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	CacheEntries int   `json:"cache_entries"`
	ErrorCount   int64 `json:"error_count"`
}

// Metrics returns a snapshot of engine counters.
func (e *Engine) Metrics() EngineMetrics {
	return EngineMetrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		CacheEntries: e.cache.Len(),
		ErrorCount:   e.errorCount.Load(),
	}
}

// branchLabel names the scoring branch for metrics.
func branchLabel(r *TrustScoreResult) string {
	switch {
	case r.SocialMultiplier > 0:
		return "personalized"
	case r.Breakdown.GlobalAverage > 0:
		return "fallback"
	default:
		return "none"
	}
}
