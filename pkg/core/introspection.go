package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EventBufferSize int    `json:"event_buffer_size"`
	Subscribers     int    `json:"subscribers"`
	GatewayType     string `json:"gateway_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gwType := "unknown"
	if s.gw != nil {
		gwType = "gateway"
		if comp, ok := s.gw.(introspection.Component); ok {
			gwType = comp.ComponentType()
		}
	}

	return ServiceState{
		EventBufferSize: s.eventBufferSize,
		Subscribers:     len(s.subs),
		GatewayType:     gwType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
