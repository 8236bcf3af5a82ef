// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/trustgraph/internal/metrics"
)

// Invalidator receives trust state change notifications. The trust
// engine implements it; handlers call through after decoding each event.
type Invalidator interface {
	OnEndorsementChanged(contentID string)
	OnFollowGraphChanged(userID string)
	OnReputationChanged(userID string)
}

// InvalidationRouter consumes change events from the bus and drives
// cache invalidation on the trust engine.
type InvalidationRouter struct {
	router *message.Router
}

// NewInvalidationRouter wires the three change topics to invalidation
// handlers. The router retries transient handler failures with backoff;
// handlers here only mutate in-memory cache state, so retries exist to
// survive momentary contention, not external outages.
func NewInvalidationRouter(bus *Bus, invalidator Invalidator) (*InvalidationRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 10 * time.Second,
	}, bus.Logger())
	if err != nil {
		return nil, fmt.Errorf("create invalidation router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
		Logger:          bus.Logger(),
	}
	router.AddMiddleware(retry.Middleware)

	router.AddNoPublisherHandler(
		"invalidate-on-endorsement",
		TopicEndorsementChanged,
		bus.Subscriber(),
		func(msg *message.Message) error {
			var ev EndorsementChanged
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				return fmt.Errorf("decode endorsement event: %w", err)
			}
			invalidator.OnEndorsementChanged(ev.ContentID)
			metrics.EventsProcessed.WithLabelValues(TopicEndorsementChanged).Inc()
			return nil
		},
	)

	router.AddNoPublisherHandler(
		"invalidate-on-follow",
		TopicFollowGraphChanged,
		bus.Subscriber(),
		func(msg *message.Message) error {
			var ev FollowGraphChanged
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				return fmt.Errorf("decode follow event: %w", err)
			}
			// The follower is the viewer whose reachable set changed.
			invalidator.OnFollowGraphChanged(ev.FollowerID)
			metrics.EventsProcessed.WithLabelValues(TopicFollowGraphChanged).Inc()
			return nil
		},
	)

	router.AddNoPublisherHandler(
		"invalidate-on-reputation",
		TopicReputationChanged,
		bus.Subscriber(),
		func(msg *message.Message) error {
			var ev ReputationChanged
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				return fmt.Errorf("decode reputation event: %w", err)
			}
			invalidator.OnReputationChanged(ev.UserID)
			metrics.EventsProcessed.WithLabelValues(TopicReputationChanged).Inc()
			return nil
		},
	)

	return &InvalidationRouter{router: router}, nil
}

// Run starts the router and blocks until the context is canceled.
func (r *InvalidationRouter) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running returns a channel closed once all handlers are subscribed.
// Tests use it to avoid publishing before subscriptions exist.
func (r *InvalidationRouter) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router and waits for in-flight handlers.
func (r *InvalidationRouter) Close() error {
	return r.router.Close()
}
