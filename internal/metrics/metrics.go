// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package metrics provides Prometheus instrumentation for the trust
// scoring pipeline, the reward ledger, the event bus, and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Trust scoring metrics
	TrustScoreComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trust_score_computations_total",
			Help: "Total trust score computations by scoring branch",
		},
		[]string{"branch"}, // "personalized", "fallback", "none"
	)

	TrustScoreDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trust_score_duration_seconds",
			Help:    "Duration of trust score computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	TrustScoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trust_score_errors_total",
			Help: "Total trust score computation errors",
		},
	)

	// Cache metrics
	TrustCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trust_cache_hits_total",
			Help: "Total trust score cache hits",
		},
	)

	TrustCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trust_cache_misses_total",
			Help: "Total trust score cache misses",
		},
	)

	TrustCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trust_cache_invalidations_total",
			Help: "Total cache entries evicted by invalidation hooks",
		},
		[]string{"reason"}, // "content", "viewer", "reputation"
	)

	// Reward metrics
	RewardsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewards_issued_total",
			Help: "Total reward calculations issued to the ledger",
		},
	)

	RewardDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reward_duplicate_events_total",
			Help: "Total reward requests answered from an existing ledger entry",
		},
	)

	RewardTokensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reward_tokens_total",
			Help: "Cumulative token amount issued across all rewards",
		},
	)

	// Event bus metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total mutation events published to the bus",
		},
		[]string{"topic"},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_processed_total",
			Help: "Total invalidation events processed by topic",
		},
		[]string{"topic"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
