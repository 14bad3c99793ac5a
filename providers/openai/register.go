package openai

import (
	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/providers"
)

func init() {
	providers.Register(providerID, func(apiKey core.Secret, opts providers.FactoryOptions) core.ImageGenerator {
		return New(apiKey, WithBaseURL(opts.BaseURL))
	})
}
