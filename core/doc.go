// Package core defines the provider-neutral types used by the mandala
// generator: image generation requests and responses, the provider interface,
// error sentinels, secret handling and request telemetry.
//
// # Client and ImageGenerator
//
// The entry point is [Client], which wraps an [ImageGenerator] and reports
// request lifecycle events to a [TelemetryHook]:
//
//	gen := openai.New(apiKey)
//	client := core.NewClient(gen, core.WithTelemetry(hook))
//	resp, err := client.GenerateImage(ctx, &core.ImageGenerateRequest{
//	    Model:   "dall-e-3",
//	    Prompt:  "A black and white mandala inspired by nature",
//	    Size:    core.ImageSize1024x1024,
//	    Quality: core.ImageQualityStandard,
//	    N:       1,
//	})
//
// # Errors
//
// Providers return [*ProviderError] values that wrap one of the sentinel
// errors ([ErrUnauthorized], [ErrRateLimited], [ErrBadRequest], ...), so
// callers classify failures with errors.Is:
//
//	if errors.Is(err, core.ErrRateLimited) {
//	    // ask the user to try again later
//	}
//
// # Secrets
//
// API keys travel as [Secret] values, which redact themselves when printed,
// logged or marshaled.
package core
