// Package providers contains image generation provider implementations.
//
// Each provider is implemented in its own subpackage (e.g., providers/openai)
// and implements core.ImageGenerator:
//
//	type ImageGenerator interface {
//	    ID() string
//	    GenerateImage(ctx context.Context, req *ImageGenerateRequest) (*ImageResponse, error)
//	}
//
// # Concurrency
//
// Providers SHOULD be safe for concurrent calls. If a provider cannot be
// concurrent-safe, it MUST document this limitation.
//
// # Errors
//
// Providers MUST return *core.ProviderError for API failures, wrapping the
// sentinel that matches the HTTP status (core.ErrUnauthorized,
// core.ErrRateLimited, core.ErrBadRequest, ...). Callers classify failures
// with errors.Is and never inspect provider-specific payloads.
//
// # Registration
//
// Providers register a factory from init() so shells can select them by name:
//
//	gen, err := providers.Create("openai", core.NewSecret(apiKey), providers.FactoryOptions{})
package providers
