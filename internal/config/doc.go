// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package config loads and validates the server configuration.
//
// Configuration is layered: struct defaults first, then an optional
// YAML file, then environment variables with the highest priority.
// Environment names map onto nested config paths, e.g. SERVER_PORT ->
// server.port and TRUST_CACHE_CAPACITY -> trust.cache_capacity.
package config
