// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should validate, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"missing storage path", func(c *Config) { c.Storage.Path = "" }, true},
		{"in-memory without path", func(c *Config) {
			c.Storage.Path = ""
			c.Storage.InMemory = true
		}, false},
		{"zero tick interval", func(c *Config) { c.WatchTime.TickInterval = 0 }, true},
		{"negative flush interval", func(c *Config) { c.WatchTime.FlushInterval = -time.Second }, true},
		{"zero rate limit disables limiting", func(c *Config) { c.API.RateLimit = 0 }, false},
		{"negative rate limit", func(c *Config) { c.API.RateLimit = -1 }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"console log format", func(c *Config) { c.Logging.Format = "console" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"THEATRUM_SERVER_PORT", "server.port"},
		{"THEATRUM_SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"THEATRUM_STORAGE_IN_MEMORY", "storage.in_memory"},
		{"THEATRUM_SESSION_PASSWORD_HASH", "session.password_hash"},
		{"THEATRUM_WATCH_TIME_TICK_INTERVAL", "watch_time.tick_interval"},
		{"THEATRUM_API_RATE_LIMIT", "api.rate_limit"},
		{"THEATRUM_LOGGING_LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransform(tt.env); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
storage:
  in_memory: true
  path: ""
api:
  cors_origins:
    - http://example.test
`
	if err := os.WriteFile(cfgFile, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, cfgFile)
	t.Setenv("THEATRUM_SERVER_PORT", "9100")
	t.Setenv("THEATRUM_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Env beats file
	if cfg.Server.Port != 9100 {
		t.Errorf("Expected env override port 9100, got %d", cfg.Server.Port)
	}
	// File beats defaults
	if !cfg.Storage.InMemory {
		t.Error("Expected storage.in_memory from file")
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "http://example.test" {
		t.Errorf("Expected CORS origins from file, got %v", cfg.API.CORSOrigins)
	}
	// Env-only override
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected logging level debug, got %q", cfg.Logging.Level)
	}
	// Untouched default survives
	if cfg.WatchTime.TickInterval != time.Second {
		t.Errorf("Expected default tick interval, got %s", cfg.WatchTime.TickInterval)
	}
}

func TestLoadCORSFromEnvCommaSeparated(t *testing.T) {
	t.Setenv("THEATRUM_STORAGE_IN_MEMORY", "true")
	t.Setenv("THEATRUM_API_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.API.CORSOrigins) != 2 {
		t.Fatalf("Expected 2 CORS origins, got %v", cfg.API.CORSOrigins)
	}
	if cfg.API.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Expected trimmed origin, got %q", cfg.API.CORSOrigins[1])
	}
}
