package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/memedir/pkg/adapters/memory"
	"github.com/aretw0/memedir/pkg/adapters/rest"
	"github.com/aretw0/memedir/pkg/core"
)

// Init builds and initializes a gateway.
// The 'uri' argument is adapter-specific: the collection endpoint for
// 'rest', ignored by 'memory'.
func Init(uri string, opts ...Option) (core.Gateway, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initGateway(uri, o)
}

func initGateway(uri string, o *options) (core.Gateway, error) {
	// 1. Check for injected gateway
	if o.gateway != nil {
		return o.gateway, nil
	}

	// 2. Initialize based on Adapter
	var gw core.Gateway
	switch o.adapter {
	case AdapterREST:
		gw = initREST(uri, o)
	case AdapterMemory:
		gw = initMemory(o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run Initialization
	if err := gw.Initialize(context.Background()); err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("gateway ready", "adapter", o.adapter)
	}
	return gw, nil
}

// initREST handles the configuration of the REST adapter
func initREST(endpoint string, o *options) core.Gateway {
	timeout, _ := o.config["timeout"].(time.Duration)
	userAgent, _ := o.config["user_agent"].(string)
	rateLimit, _ := o.config["rate_limit"].(float64)
	client, _ := o.config["http_client"].(*http.Client)
	readOnly, _ := o.config["read_only"].(bool)

	if userAgent == "" {
		userAgent = UserAgent()
	}

	return rest.NewGateway(rest.Config{
		Endpoint:  endpoint,
		Timeout:   timeout,
		UserAgent: userAgent,
		RateLimit: rateLimit,
		ReadOnly:  readOnly,
		Logger:    o.logger,
		Client:    client,
	})
}

// initMemory handles the configuration of the in-process adapter
func initMemory(o *options) core.Gateway {
	fixture, _ := o.config["fixture"].(string)
	seed, _ := o.config["seed"].([]core.Record)
	readOnly, _ := o.config["read_only"].(bool)

	return memory.NewGateway(memory.Config{
		FixturePath: fixture,
		Seed:        seed,
		ReadOnly:    readOnly,
		Logger:      o.logger,
	})
}
