// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateTrust(); err != nil {
		return err
	}
	if err := c.validateReward(); err != nil {
		return err
	}
	return c.validateAPI()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging, or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateTrust() error {
	if c.Trust.CacheCapacity <= 0 {
		return fmt.Errorf("TRUST_CACHE_CAPACITY must be positive, got %d", c.Trust.CacheCapacity)
	}
	return nil
}

func (c *Config) validateReward() error {
	if c.Reward.DefaultBaseReward < 0 {
		return fmt.Errorf("REWARD_DEFAULT_BASE_REWARD must be non-negative, got %v", c.Reward.DefaultBaseReward)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitRequests <= 0 {
		return fmt.Errorf("API_RATE_LIMIT_REQUESTS must be positive, got %d", c.API.RateLimitRequests)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("API_RATE_LIMIT_WINDOW must be positive")
	}
	if len(c.API.CORSOrigins) == 0 {
		return fmt.Errorf("API_CORS_ORIGINS must list at least one origin (use * for any)")
	}
	return nil
}
