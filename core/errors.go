package core

import (
	"errors"
	"fmt"
)

// ProviderError represents an error returned by a provider with full context.
type ProviderError struct {
	Provider  string
	Status    int
	RequestID string
	Code      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status=%d, code=%s, request_id=%s)",
			e.Provider, e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("%s: %s (status=%d, code=%s)",
		e.Provider, e.Message, e.Status, e.Code)
}

// Unwrap returns the underlying error for error chaining.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")
)

// Validation errors with actionable guidance.
var (
	ErrModelRequired  = errors.New("model required: set model in the config file or pass --model, e.g. --model dall-e-3")
	ErrPromptRequired = errors.New("prompt required: an image request needs a non-empty prompt")

	ErrInvalidImageSize      = errors.New("invalid image size: use 1024x1024, 1792x1024 or 1024x1792")
	ErrInvalidImageQuality   = errors.New("invalid image quality: use standard or hd")
	ErrInvalidResponseFormat = errors.New("invalid response format: use url or b64_json")
)
