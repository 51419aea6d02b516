package goEntitle

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty prefix", func(c *Config) { c.Storage.RedisPrefix = "" }},
		{"zero interval", func(c *Config) { c.Sync.Interval = 0 }},
		{"max below interval", func(c *Config) { c.Sync.MaxInterval = c.Sync.Interval / 2 }},
		{"factor below one", func(c *Config) { c.Sync.BackoffFactor = 0.5 }},
		{"zero fetch timeout", func(c *Config) { c.Sync.FetchTimeout = 0 }},
		{"negative hold", func(c *Config) { c.Notice.HoldDuration = -time.Second }},
		{"negative redirect delay", func(c *Config) { c.Auth.DuplicateRedirectDelay = -time.Second }},
		{"zero digit floor", func(c *Config) { c.Payment.MinNumberDigits = 0 }},
		{"zero review window", func(c *Config) { c.Payment.ReviewWindow = 0 }},
		{"zero event buffer", func(c *Config) { c.Events.BufferSize = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDefaultSyncInterval(t *testing.T) {
	// The poll period is deliberately coarse out of the box; callers that
	// need the old aggressive cadence opt in through the builder.
	if got := defaultConfig().Sync.Interval; got != 30*time.Second {
		t.Fatalf("unexpected default interval %v", got)
	}
}
