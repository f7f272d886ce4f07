package weather

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Provider abstracts a weather data source (e.g. BBC Weather, Open-Meteo).
type Provider interface {
	Name() string

	// SearchLocations resolves a free-text city query to candidate locations.
	SearchLocations(ctx context.Context, query string) ([]Location, error)

	// Forecast returns today's forecast for a previously resolved location.
	Forecast(ctx context.Context, loc Location) (Snapshot, error)
}

// ProviderOptions carries the shared dependencies a provider needs.
type ProviderOptions struct {
	Client *http.Client
}

// ProviderFactory builds a provider instance from options.
type ProviderFactory func(ProviderOptions) Provider

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ProviderFactory)
)

// RegisterProvider makes a provider constructor available by name.
// Provider packages call this from init.
func RegisterProvider(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// NewProvider constructs the named provider.
func NewProvider(name string, opts ProviderOptions) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %v)", name, ProviderNames())
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	return factory(opts), nil
}

// ProviderNames returns the registered provider names, sorted.
func ProviderNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
