// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package trust implements viewer-personalized trust scoring over a
// bounded-depth social graph.
//
// A trust score answers the question "how much social proof does content
// C have from the perspective of viewer V?". Each endorser of C
// contributes a weight derived from their social distance to V (direct
// follow or friend-of-friend) multiplied by their own reputation. The
// capped sum of those weights scales a neutral base quality into the
// final 0-10 score. Viewers with no reachable endorsers fall back to a
// non-personalized global average.
//
// The package is organized as:
//
//   - PathResolver: depth-2 BFS social distance over a SocialGraph
//   - Calculator: the scoring function itself
//   - Cache: (viewer, content) memoization with coarse invalidation
//   - Engine: coordinates cache, resolver, and calculator, and exposes
//     the invalidation hooks driven by mutation events
//
// All state is injected through the collaborator interfaces in types.go;
// the package holds no process-wide singletons and performs no I/O of
// its own.
package trust
