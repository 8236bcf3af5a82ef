// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package events provides the in-process event bus connecting trust
// state mutations to cache invalidation.
//
// Store mutations publish typed change events (follow graph, endorsement,
// reputation) onto a Watermill gochannel pub/sub. The InvalidationRouter
// subscribes to those topics and translates each event into the matching
// trust engine invalidation hook, so scoring never serves results computed
// from stale social state.
//
// The bus is process-local. Events carry no ordering guarantees across
// topics; each hook is coarse enough (evict by content, by viewer, or
// purge) that reordering within a topic window is harmless.
package events
