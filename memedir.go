package memedir

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/memedir/internal/platform"
	"github.com/aretw0/memedir/pkg/core"
	"github.com/aretw0/memedir/pkg/imageurl"
)

// --- Types ---

// Record is a public alias for the domain record.
type Record = core.Record

// Form is a public alias for the create/edit form.
type Form = core.Form

// --- Configuration ---

// Option defines a functional option for configuring memedir.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterREST   = platform.AdapterREST
	AdapterMemory = platform.AdapterMemory
)

// WithLogger sets the logger for the service and its gateway.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithGateway allows injecting a custom gateway.
func WithGateway(gw core.Gateway) Option {
	return platform.WithGateway(gw)
}

// WithAdapter selects the gateway adapter by name ("rest" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithTimeout bounds every REST request.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithUserAgent overrides the REST User-Agent.
func WithUserAgent(ua string) Option {
	return platform.WithUserAgent(ua)
}

// WithRateLimit caps REST requests per second.
func WithRateLimit(perSecond float64) Option {
	return platform.WithRateLimit(perSecond)
}

// WithHTTPClient replaces the http.Client used by the REST adapter.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithFixture seeds the memory adapter from a YAML file.
func WithFixture(path string) Option {
	return platform.WithFixture(path)
}

// WithSeed seeds the memory adapter with records.
func WithSeed(records []Record) Option {
	return platform.WithSeed(records)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithLikes replaces the like generator.
func WithLikes(fn func() int) Option {
	return platform.WithLikes(fn)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New creates a new memedir Service.
// The endpoint is the REST collection URL; empty means the default one.
func New(endpoint string, opts ...Option) (*core.Service, error) {
	return platform.New(endpoint, opts...)
}

// Init builds and initializes a gateway explicitly.
func Init(endpoint string, opts ...Option) (core.Gateway, error) {
	return platform.Init(endpoint, opts...)
}

// --- Utils ---

// ImageURL resolves a user-supplied link into an image source.
func ImageURL(input string) string {
	return imageurl.ImageURL(input)
}

// IsValidHTTPURL reports whether input is an acceptable http(s) URL.
func IsValidHTTPURL(input string) bool {
	return imageurl.IsValidHTTPURL(input)
}

// FindConfig looks upwards from startDir for memedir.yaml.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// Version returns the library version.
func Version() string {
	return platform.Version()
}
