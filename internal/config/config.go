// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package config provides layered configuration loading using Koanf v2.
//
// Precedence: environment variables > YAML config file > built-in
// defaults. Environment variables use the THEATRUM_ prefix with
// underscores separating path segments, e.g. THEATRUM_SERVER_PORT=9090
// maps to server.port.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Theatrum server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Session   SessionConfig   `koanf:"session"`
	WatchTime WatchTimeConfig `koanf:"watch_time"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StorageConfig controls the durable state store.
type StorageConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs the store without a disk footprint. Used by tests
	// and throwaway demo deployments; nothing survives a restart.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites forces fsync on every snapshot write. Durability over
	// throughput; snapshot writes are rare, so the cost is acceptable.
	SyncWrites bool `koanf:"sync_writes"`
}

// SessionConfig controls the simulated login.
type SessionConfig struct {
	// PasswordHash is an optional bcrypt hash gating login. Empty means
	// any login attempt succeeds, matching the original mock behaviour.
	PasswordHash string `koanf:"password_hash"`

	// Restore re-establishes the persisted session at startup when the
	// snapshot recorded an authenticated state with a valid profile.
	Restore bool `koanf:"restore"`
}

// WatchTimeConfig controls the watch-time accumulator.
//
// Accrual policy is fixed: watch time accrues only while a session is
// authenticated. The policy is not configurable so that deployments
// cannot silently disagree about what the counter means.
type WatchTimeConfig struct {
	// TickInterval is the accrual cadence. One second of watch time is
	// credited per tick, so changing this changes the clock rate; it
	// exists only so tests can run the accumulator faster.
	TickInterval time.Duration `koanf:"tick_interval"`

	// FlushInterval is how often the accumulated value is persisted in
	// the background, in addition to the synchronous flush on shutdown.
	FlushInterval time.Duration `koanf:"flush_interval"`
}

// APIConfig controls the HTTP API surface.
type APIConfig struct {
	// CORSOrigins lists allowed origins for the front end.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the per-IP request budget per minute. Zero disables
	// rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// LoggingConfig mirrors logging.Config for the config file.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8484,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Path:       "/data/theatrum",
			InMemory:   false,
			SyncWrites: true,
		},
		Session: SessionConfig{
			PasswordHash: "",
			Restore:      true,
		},
		WatchTime: WatchTimeConfig{
			TickInterval:  time.Second,
			FlushInterval: 30 * time.Second,
		},
		API: APIConfig{
			CORSOrigins: []string{"http://localhost:5173"},
			RateLimit:   300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values that would fail at
// runtime. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required unless storage.in_memory is set")
	}
	if c.WatchTime.TickInterval <= 0 {
		return fmt.Errorf("watch_time.tick_interval must be positive, got %s", c.WatchTime.TickInterval)
	}
	if c.WatchTime.FlushInterval <= 0 {
		return fmt.Errorf("watch_time.flush_interval must be positive, got %s", c.WatchTime.FlushInterval)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be zero (disabled) or positive, got %d", c.API.RateLimit)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
