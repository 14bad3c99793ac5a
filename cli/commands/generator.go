package commands

import (
	"fmt"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/mandala"
	"github.com/petal-labs/mandala/providers"
	_ "github.com/petal-labs/mandala/providers/openai"
	"github.com/petal-labs/mandala/web"
)

func defaultGeneratorFactory(s Settings, hook core.TelemetryHook) (web.Generator, error) {
	if !providers.IsRegistered(s.Provider) {
		return nil, fmt.Errorf("unsupported provider: %s (available: %v)", s.Provider, providers.List())
	}

	factory := mandala.RegistryFactory(s.Provider, providers.FactoryOptions{BaseURL: s.BaseURL})
	return mandala.New(factory,
		mandala.WithModel(s.Model),
		mandala.WithTelemetry(hook),
	), nil
}
