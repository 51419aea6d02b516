package goEntitle

import (
	"errors"
	"net/http"
	"time"

	"github.com/MrEthical07/goEntitle/api"
	"github.com/MrEthical07/goEntitle/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Builder assembles an [Engine]. Construction is allocation-only until
// Build; no I/O happens before the first Engine call.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	baseURL    string
	httpClient *http.Client
	apiClient  *api.Client

	logger    *zap.Logger
	eventSink EventSink

	built bool
}

// New returns a [Builder] with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the client for the persistent session store. Required.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithBaseURL points the engine at the remote account backend.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// WithHTTPClient overrides the HTTP client used for remote calls.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAPIClient injects a preconstructed API client, overriding
// WithBaseURL and WithHTTPClient.
func (b *Builder) WithAPIClient(client *api.Client) *Builder {
	b.apiClient = client
	return b
}

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithEventSink sets the consumer of the engine's event stream.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.eventSink = sink
	return b
}

// WithSyncInterval overrides the entitlement poll period.
func (b *Builder) WithSyncInterval(interval, maxInterval time.Duration) *Builder {
	b.config.Sync.Interval = interval
	b.config.Sync.MaxInterval = maxInterval
	return b
}

// WithMetricsEnabled toggles counter recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the sync latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and wires the engine. A Builder is
// single-use.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.apiClient == nil && b.baseURL == "" {
		return nil, errors.New("api base URL or client required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := b.apiClient
	if client == nil {
		client = api.NewClient(b.baseURL, b.httpClient)
	}

	metrics := NewMetrics(cfg.Metrics)

	engine := &Engine{
		config:  cfg,
		store:   session.NewStore(b.redis, cfg.Storage.RedisPrefix, logger),
		client:  client,
		logger:  logger,
		metrics: metrics,
		events:  newEventDispatcher(cfg.Events, b.eventSink),
		notice:  newNoticeTimeline(cfg.Notice, metrics),
	}

	b.built = true
	return engine, nil
}
