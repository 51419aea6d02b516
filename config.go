package goEntitle

import (
	"errors"
	"time"
)

// Config defines every tunable of the session core. Config instances are
// intended to be configured during initialization and then treated as
// immutable unless documented otherwise.
type Config struct {
	Storage StorageConfig
	Sync    SyncConfig
	Notice  NoticeConfig
	Auth    AuthConfig
	Payment PaymentConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig tunes the persistent session store.
type StorageConfig struct {
	RedisPrefix string
}

/*
====================================
SYNC CONFIG
====================================
*/

// SyncConfig tunes the entitlement synchronizer.
//
// The historical client polled every second; the mechanism survives but the
// period is a parameter with a much coarser default. Failures stretch the
// wait by BackoffFactor per consecutive failure up to MaxInterval; a
// success snaps back to Interval.
type SyncConfig struct {
	Interval      time.Duration
	MaxInterval   time.Duration
	BackoffFactor float64
	FetchTimeout  time.Duration
}

/*
====================================
NOTICE CONFIG
====================================
*/

// NoticeConfig tunes the transient notice timeline. The defaults match the
// fade-in / hold / fade-out schedule the app has always shown.
type NoticeConfig struct {
	AppearDuration  time.Duration
	HoldDuration    time.Duration
	DismissDuration time.Duration
}

/*
====================================
AUTH CONFIG
====================================
*/

// AuthConfig tunes the auth flows.
type AuthConfig struct {
	// DuplicateRedirectDelay is how long the shell should wait before
	// redirecting to the login screen after a duplicate-registration
	// answer, so the notice stays readable.
	DuplicateRedirectDelay time.Duration
}

/*
====================================
PAYMENT CONFIG
====================================
*/

// PaymentConfig tunes the manual payment-request flow.
type PaymentConfig struct {
	// MinNumberDigits is the client-side floor on the mobile-money number
	// length. Nothing is sent below it.
	MinNumberDigits int
	// ReviewWindow is the countdown shown while the operator reviews the
	// transfer. Review itself happens out of band.
	ReviewWindow time.Duration
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig tunes the one-shot event dispatcher.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull makes Emit non-blocking: events beyond the buffer are
	// counted and dropped rather than stalling a flow.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig tunes the counter/histogram subsystem.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration the engine ships with. Callers
// adjust fields and pass the result to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			RedisPrefix: "ge",
		},
		Sync: SyncConfig{
			Interval:      30 * time.Second,
			MaxInterval:   5 * time.Minute,
			BackoffFactor: 2,
			FetchTimeout:  10 * time.Second,
		},
		Notice: NoticeConfig{
			AppearDuration:  300 * time.Millisecond,
			HoldDuration:    1000 * time.Millisecond,
			DismissDuration: 300 * time.Millisecond,
		},
		Auth: AuthConfig{
			DuplicateRedirectDelay: 3 * time.Second,
		},
		Payment: PaymentConfig{
			MinNumberDigits: 8,
			ReviewWindow:    300 * time.Second,
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(c Config) Config {
	// No reference types in Config today; a value copy is a deep copy.
	return c
}

// Validate reports the first configuration error found.
func (c Config) Validate() error {
	if c.Storage.RedisPrefix == "" {
		return errors.New("Storage.RedisPrefix must not be empty")
	}
	if c.Sync.Interval <= 0 {
		return errors.New("Sync.Interval must be positive")
	}
	if c.Sync.MaxInterval > 0 && c.Sync.MaxInterval < c.Sync.Interval {
		return errors.New("Sync.MaxInterval must be >= Sync.Interval")
	}
	if c.Sync.BackoffFactor < 1 {
		return errors.New("Sync.BackoffFactor must be >= 1")
	}
	if c.Sync.FetchTimeout <= 0 {
		return errors.New("Sync.FetchTimeout must be positive")
	}
	if c.Notice.AppearDuration < 0 || c.Notice.HoldDuration < 0 || c.Notice.DismissDuration < 0 {
		return errors.New("Notice durations must not be negative")
	}
	if c.Auth.DuplicateRedirectDelay < 0 {
		return errors.New("Auth.DuplicateRedirectDelay must not be negative")
	}
	if c.Payment.MinNumberDigits <= 0 {
		return errors.New("Payment.MinNumberDigits must be positive")
	}
	if c.Payment.ReviewWindow <= 0 {
		return errors.New("Payment.ReviewWindow must be positive")
	}
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("Events.BufferSize must be positive when events are enabled")
	}
	return nil
}
