// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package store provides the in-memory system of record for users,
// follow edges, content, and endorsements.
//
// The Store implements trust.DataProvider for the scoring engine and
// exposes mutators for the API layer. Every mutation that can change a
// trust score publishes a change event so the invalidation router keeps
// the score cache coherent. Endorsements have set semantics: endorsing
// the same content twice is a no-op, so one user can never contribute
// more than once to a content item's social proof.
package store
