// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package reward computes token reward amounts from social proof, with
// the same influence cap the trust scorer uses so reward inflation
// tracks trust inflation resistance.
//
// Reward issuance is append-only and at-most-once per (content, event):
// once a calculation is recorded for a triggering event it is never
// recomputed, even if the underlying trust state later changes. Rewards
// are a snapshot; trust scores are live.
package reward
