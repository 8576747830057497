package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/memedir/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterREST   = "rest"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the memedir service.
type options struct {
	gateway core.Gateway
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}
	likes   func() int
}

// Option defines a functional option for configuring memedir.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		gateway: nil,
		logger:  nil,
		adapter: AdapterREST,
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the service and its gateway.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGateway allows injecting a custom gateway (e.g. mock, another API).
// If provided, adapter selection is skipped.
func WithGateway(gw core.Gateway) Option {
	return func(o *options) {
		o.gateway = gw
	}
}

// WithAdapter selects the gateway adapter by name ("rest" or "memory").
// Defaults to "rest". An empty name keeps the current choice.
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithTimeout bounds every request made by the REST adapter.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.config["timeout"] = d
	}
}

// WithUserAgent overrides the User-Agent sent by the REST adapter.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.config["user_agent"] = ua
	}
}

// WithRateLimit caps REST requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(o *options) {
		o.config["rate_limit"] = perSecond
	}
}

// WithHTTPClient replaces the http.Client used by the REST adapter.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.config["http_client"] = c
	}
}

// WithFixture seeds the memory adapter from a YAML file.
func WithFixture(path string) Option {
	return func(o *options) {
		o.config["fixture"] = path
	}
}

// WithSeed seeds the memory adapter with records.
func WithSeed(records []core.Record) Option {
	return func(o *options) {
		o.config["seed"] = records
	}
}

// WithReadOnly enables read-only mode.
// Create, Update and Delete return core.ErrReadOnly without reaching the API.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithLikes replaces the like generator used on create and edit.
func WithLikes(fn func() int) Option {
	return func(o *options) {
		o.likes = fn
	}
}

// WithEventBuffer sets the per-subscriber event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}
