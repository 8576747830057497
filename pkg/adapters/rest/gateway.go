package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aretw0/memedir/pkg/core"
)

const (
	// DefaultEndpoint is the public collection the application was built against.
	DefaultEndpoint = "https://66d9c42d4ad2f6b8ed55f71a.mockapi.io/api/v1/items"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 512
)

// Config holds the configuration for the REST gateway.
type Config struct {
	Endpoint  string
	Timeout   time.Duration
	UserAgent string
	RateLimit float64 // requests per second, 0 = unlimited
	ReadOnly  bool
	Logger    *slog.Logger
	Client    *http.Client
}

// Gateway implements core.Gateway against a JSON collection endpoint.
type Gateway struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	config   Config
	logger   *slog.Logger

	mu       sync.RWMutex
	requests int64
	failures int64
	lastErr  string
}

// NewGateway creates a new REST gateway. It performs no I/O.
func NewGateway(config Config) *Gateway {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client := config.Client
	if client == nil {
		client = &http.Client{}
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		burst := int(config.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	return &Gateway{
		endpoint: strings.TrimRight(config.Endpoint, "/"),
		client:   client,
		limiter:  limiter,
		config:   config,
		logger:   logger,
	}
}

// Endpoint returns the collection URL in use.
func (g *Gateway) Endpoint() string {
	return g.endpoint
}

// Initialize validates the endpoint. It does not contact the API.
func (g *Gateway) Initialize(ctx context.Context) error {
	u, err := url.Parse(g.endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", g.endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", g.endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", g.endpoint)
	}
	return nil
}

// List returns all records.
func (g *Gateway) List(ctx context.Context) ([]core.Record, error) {
	var records []core.Record
	if err := g.do(ctx, http.MethodGet, g.endpoint, nil, &records); err != nil {
		g.logger.Error("error fetching records", "error", err)
		return nil, err
	}
	if records == nil {
		records = []core.Record{}
	}
	return records, nil
}

// Get retrieves a record by its ID.
func (g *Gateway) Get(ctx context.Context, id string) (core.Record, error) {
	if id == "" {
		return core.Record{}, core.ErrEmptyID
	}
	var r core.Record
	if err := g.do(ctx, http.MethodGet, g.itemURL(id), nil, &r); err != nil {
		g.logger.Error("error fetching record", "id", id, "error", err)
		return core.Record{}, err
	}
	return r, nil
}

type createBody struct {
	Name     string `json:"name"`
	ImageURL string `json:"imgUrl"`
	Likes    int    `json:"likes"`
}

// Create posts a new record. The ID of r is not sent.
func (g *Gateway) Create(ctx context.Context, r core.Record) (core.Record, error) {
	if g.config.ReadOnly {
		return core.Record{}, core.ErrReadOnly
	}
	body := createBody{Name: r.Name, ImageURL: r.ImageURL, Likes: r.Likes}

	var created core.Record
	if err := g.do(ctx, http.MethodPost, g.endpoint, body, &created); err != nil {
		g.logger.Error("error creating record", "error", err)
		return core.Record{}, err
	}
	return created, nil
}

// Update sends a partial record with PUT.
func (g *Gateway) Update(ctx context.Context, id string, p core.Patch) (core.Record, error) {
	if g.config.ReadOnly {
		return core.Record{}, core.ErrReadOnly
	}
	if id == "" {
		return core.Record{}, core.ErrEmptyID
	}

	var updated core.Record
	if err := g.do(ctx, http.MethodPut, g.itemURL(id), p, &updated); err != nil {
		g.logger.Error("error updating record", "id", id, "error", err)
		return core.Record{}, err
	}
	return updated, nil
}

// Delete removes a record by its ID.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if g.config.ReadOnly {
		return core.ErrReadOnly
	}
	if id == "" {
		return core.ErrEmptyID
	}
	if err := g.do(ctx, http.MethodDelete, g.itemURL(id), nil, nil); err != nil {
		g.logger.Error("error deleting record", "id", id, "error", err)
		return err
	}
	return nil
}

func (g *Gateway) itemURL(id string) string {
	return g.endpoint + "/" + url.PathEscape(id)
}

// do performs a single JSON round trip. A nil out discards the response body.
func (g *Gateway) do(ctx context.Context, method, target string, in, out any) (err error) {
	defer func() { g.record(err) }()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.config.UserAgent != "" {
		req.Header.Set("User-Agent", g.config.UserAgent)
	}

	g.logger.Debug("gateway request", "method", method, "url", target)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &core.StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s %s: empty response body", method, target)
		}
		return fmt.Errorf("%s %s: failed to decode response: %w", method, target, err)
	}
	return nil
}

func (g *Gateway) record(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests++
	if err != nil {
		g.failures++
		g.lastErr = err.Error()
	}
}

var _ core.Gateway = (*Gateway)(nil)
