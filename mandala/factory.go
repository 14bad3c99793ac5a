package mandala

import (
	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/providers"
)

// RegistryFactory returns a ProviderFactory that creates the named provider
// from the providers registry. The provider package must be imported for its
// registration side effect.
func RegistryFactory(name string, opts providers.FactoryOptions) ProviderFactory {
	return func(apiKey core.Secret) (core.ImageGenerator, error) {
		return providers.Create(name, apiKey, opts)
	}
}
