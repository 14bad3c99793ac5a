package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petal-labs/mandala/core"
)

// Factory creates an image generator for the given API key.
// Extra options (base URL, HTTP client) are applied by the caller's closure.
type Factory func(apiKey core.Secret, opts FactoryOptions) core.ImageGenerator

// FactoryOptions carries the per-deployment settings a factory may honor.
type FactoryOptions struct {
	// BaseURL overrides the provider's default API endpoint when non-empty.
	BaseURL string
}

// registry holds registered provider factories.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a provider factory to the registry.
// It is typically called from a provider's init() function.
// If a provider with the same name is already registered, it will be overwritten.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a provider factory by name.
// Returns nil if the provider is not registered.
func Get(name string) Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// Create creates a new generator by name with the given API key.
// Returns an error if the provider is not registered.
func Create(name string, apiKey core.Secret, opts FactoryOptions) (core.ImageGenerator, error) {
	factory := Get(name)
	if factory == nil {
		return nil, fmt.Errorf("unknown provider: %s (available: %v)", name, List())
	}
	return factory(apiKey, opts), nil
}

// List returns the names of all registered providers in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered returns true if a provider with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
