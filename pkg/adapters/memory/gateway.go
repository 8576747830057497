// Package memory provides an in-process core.Gateway.
//
// It stands in for the remote API in demos and tests: IDs are server-style
// opaque UUIDs and records can be seeded from a YAML fixture.
package memory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/memedir/pkg/core"
)

// Config holds the configuration for the memory gateway.
type Config struct {
	FixturePath string // optional YAML file with a list of records
	Seed        []core.Record
	ReadOnly    bool
	Logger      *slog.Logger
}

// Gateway implements core.Gateway in memory. Insertion order is preserved.
type Gateway struct {
	config Config
	logger *slog.Logger

	mu      sync.RWMutex
	order   []string
	records map[string]core.Record
}

// NewGateway creates an empty memory gateway. Seeds are applied by Initialize.
func NewGateway(config Config) *Gateway {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{
		config:  config,
		logger:  logger,
		records: make(map[string]core.Record),
	}
}

// Initialize loads the fixture file (if any) and the configured seed.
func (g *Gateway) Initialize(ctx context.Context) error {
	seed := append([]core.Record(nil), g.config.Seed...)

	if g.config.FixturePath != "" {
		fromFile, err := LoadFixture(g.config.FixturePath)
		if err != nil {
			return err
		}
		seed = append(fromFile, seed...)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range seed {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, exists := g.records[r.ID]; !exists {
			g.order = append(g.order, r.ID)
		}
		g.records[r.ID] = r
	}

	g.logger.Debug("memory gateway seeded", "records", len(g.order))
	return nil
}

// LoadFixture reads a YAML list of records.
func LoadFixture(path string) ([]core.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var records []core.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return records, nil
}

// List returns all records in insertion order.
func (g *Gateway) List(ctx context.Context) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]core.Record, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.records[id])
	}
	return out, nil
}

// Get retrieves a record by its ID.
func (g *Gateway) Get(ctx context.Context, id string) (core.Record, error) {
	if err := ctx.Err(); err != nil {
		return core.Record{}, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, ok := g.records[id]
	if !ok {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return r, nil
}

// Create stores r under a fresh UUID.
func (g *Gateway) Create(ctx context.Context, r core.Record) (core.Record, error) {
	if g.config.ReadOnly {
		return core.Record{}, core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return core.Record{}, err
	}

	r.ID = uuid.NewString()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[r.ID] = r
	g.order = append(g.order, r.ID)
	return r, nil
}

// Update applies p to the stored record.
func (g *Gateway) Update(ctx context.Context, id string, p core.Patch) (core.Record, error) {
	if g.config.ReadOnly {
		return core.Record{}, core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return core.Record{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.records[id]
	if !ok {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	r = p.Apply(r)
	g.records[id] = r
	return r, nil
}

// Delete removes a record by its ID.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if g.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.records[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	delete(g.records, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ core.Gateway = (*Gateway)(nil)
