// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package config

import (
	"time"
)

// Config is the root configuration for the trustgraph server.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Trust   TrustConfig   `koanf:"trust"`
	Reward  RewardConfig  `koanf:"reward"`
	API     APIConfig     `koanf:"api"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// TrustConfig tunes the trust scoring engine.
type TrustConfig struct {
	CacheCapacity int `koanf:"cache_capacity"`
}

// RewardConfig tunes the reward calculator and its ledger.
type RewardConfig struct {
	// LedgerPath is the on-disk Badger directory for the reward ledger.
	// Empty selects an in-memory ledger, losing idempotency across restarts.
	LedgerPath        string  `koanf:"ledger_path"`
	DefaultBaseReward float64 `koanf:"default_base_reward"`
}

// APIConfig tunes the HTTP API surface.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// defaultConfig returns the configuration used when no file or
// environment overrides are present.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Trust: TrustConfig{
			CacheCapacity: 16384,
		},
		Reward: RewardConfig{
			LedgerPath:        "/data/trustgraph/rewards",
			DefaultBaseReward: 100,
		},
		API: APIConfig{
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
	}
}
