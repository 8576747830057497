package rest

import (
	"github.com/aretw0/introspection"
)

// GatewayState exposes internal state for observability.
type GatewayState struct {
	Endpoint  string  `json:"endpoint"`
	Timeout   string  `json:"timeout"`
	RateLimit float64 `json:"rate_limit"`
	ReadOnly  bool    `json:"read_only"`
	Requests  int64   `json:"requests"`
	Failures  int64   `json:"failures"`
	LastError string  `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (g *Gateway) State() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GatewayState{
		Endpoint:  g.endpoint,
		Timeout:   g.config.Timeout.String(),
		RateLimit: g.config.RateLimit,
		ReadOnly:  g.config.ReadOnly,
		Requests:  g.requests,
		Failures:  g.failures,
		LastError: g.lastErr,
	}
}

// ComponentType implements introspection.Component.
func (g *Gateway) ComponentType() string {
	return "rest-gateway"
}

var _ introspection.Introspectable = (*Gateway)(nil)
var _ introspection.Component = (*Gateway)(nil)
