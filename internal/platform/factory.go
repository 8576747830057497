package platform

import (
	"github.com/aretw0/memedir/pkg/core"
)

// svc, err := memedir.New(endpoint, memedir.WithAdapter("memory"))
// The URI argument is adapter-specific (collection URL for 'rest').
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	gw, err := initGateway(uri, o)
	if err != nil {
		return nil, err
	}

	svcOpts := []core.ServiceOption{core.WithServiceLogger(o.logger)}
	if o.likes != nil {
		svcOpts = append(svcOpts, core.WithLikes(o.likes))
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}

	return core.NewService(gw, svcOpts...), nil
}
