package memory

import (
	"github.com/aretw0/introspection"
)

// GatewayState exposes internal state for observability.
type GatewayState struct {
	Records     int    `json:"records"`
	FixturePath string `json:"fixture_path,omitempty"`
	ReadOnly    bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (g *Gateway) State() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GatewayState{
		Records:     len(g.records),
		FixturePath: g.config.FixturePath,
		ReadOnly:    g.config.ReadOnly,
	}
}

// ComponentType implements introspection.Component.
func (g *Gateway) ComponentType() string {
	return "memory-gateway"
}

var _ introspection.Introspectable = (*Gateway)(nil)
var _ introspection.Component = (*Gateway)(nil)
