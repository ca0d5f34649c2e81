package factory

import (
	"time"

	"github.com/NereaCassian/C-3PO/internal/adapters/llm/httpclient"
	"github.com/NereaCassian/C-3PO/internal/adapters/llm/openai"
	"github.com/NereaCassian/C-3PO/internal/adapters/llm/registry"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

const (
	DriverResty  = "resty"
	DriverOpenAI = "openai"
)

// Default registers the built-in drivers.
func Default(timeout time.Duration) *registry.Registry {
	r := registry.New()
	r.Register(DriverResty, func(cfg domain.ProviderConfig) (ports.ChatClient, error) {
		return httpclient.New(cfg.APIKey, cfg.Endpoint, timeout), nil
	})
	r.Register(DriverOpenAI, func(cfg domain.ProviderConfig) (ports.ChatClient, error) {
		return openai.New(cfg.APIKey, cfg.Endpoint, openai.WithTimeout(timeout)), nil
	})
	return r
}

// Builder binds a driver name so callers only pass the configuration.
func Builder(r *registry.Registry, driver string) func(domain.ProviderConfig) (ports.ChatClient, error) {
	return func(cfg domain.ProviderConfig) (ports.ChatClient, error) {
		return r.Build(driver, cfg)
	}
}
