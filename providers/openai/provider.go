// Package openai implements core.ImageGenerator for the OpenAI Images API.
package openai

import (
	"net/http"
	"strings"

	"github.com/petal-labs/mandala/core"
)

// providerID is the identifier reported in errors and telemetry.
const providerID = "openai"

// OpenAI is an image generation provider for the OpenAI API.
// OpenAI is safe for concurrent use.
type OpenAI struct {
	config Config
}

// New creates a new OpenAI provider with the given API key and options.
func New(apiKey core.Secret, opts ...Option) *OpenAI {
	cfg := Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &OpenAI{config: cfg}
}

// ID returns the provider identifier.
func (p *OpenAI) ID() string {
	return providerID
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *OpenAI) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("Authorization", "Bearer "+p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	if p.config.OrgID != "" {
		headers.Set("OpenAI-Organization", p.config.OrgID)
	}
	if p.config.ProjectID != "" {
		headers.Set("OpenAI-Project", p.config.ProjectID)
	}

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Compile-time check that OpenAI implements ImageGenerator.
var _ core.ImageGenerator = (*OpenAI)(nil)
