// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package supervisor builds the suture supervision tree for the server.
//
// The tree has three layers with independent failure isolation:
//
//   - data: reward ledger maintenance (Badger value log GC)
//   - messaging: the cache invalidation router
//   - api: the HTTP server
//
// A crash in the messaging layer restarts the invalidation router
// without taking down the API; the trust engine keeps serving from
// cache in the meantime. Supervisor events are logged through slog
// backed by the zerolog global logger.
package supervisor
