package mandala

import (
	"errors"

	"github.com/petal-labs/mandala/core"
)

// Kind classifies a failed generation.
type Kind int

const (
	// KindUnclassified covers any failure not listed below: transport,
	// server errors, fetch, decode and encode problems.
	KindUnclassified Kind = iota
	// KindMissingCredential means no API key was supplied.
	KindMissingCredential
	// KindMissingPromptSeed means the inspiration word was empty or whitespace.
	KindMissingPromptSeed
	// KindAuthentication means the provider rejected the API key.
	KindAuthentication
	// KindRateLimited means the provider throttled the request.
	KindRateLimited
	// KindBadRequest means the provider rejected the request itself.
	KindBadRequest
)

var kindNames = map[Kind]string{
	KindUnclassified:      "unclassified",
	KindMissingCredential: "missing_credential",
	KindMissingPromptSeed: "missing_prompt_seed",
	KindAuthentication:    "authentication",
	KindRateLimited:       "rate_limited",
	KindBadRequest:        "bad_request",
}

// String returns the snake_case name used in logs and JSON responses.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsValidation reports whether the failure was detected before any network call.
func (k Kind) IsValidation() bool {
	return k == KindMissingCredential || k == KindMissingPromptSeed
}

// Failure is the only error type returned by Generator.Generate.
type Failure struct {
	Kind Kind
	// Detail is the text appended to the user message for KindBadRequest
	// (the provider's message, verbatim) and KindUnclassified.
	Detail string
	// Err is the underlying cause, nil for validation failures.
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Kind.String() + ": " + f.Err.Error()
	}
	return f.Kind.String()
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Message returns the single line shown to the user.
func (f *Failure) Message() string {
	switch f.Kind {
	case KindMissingCredential:
		return "Please enter your OpenAI API key first!"
	case KindMissingPromptSeed:
		return "Please enter an inspiration word!"
	case KindAuthentication:
		return "Invalid API key. Please check your OpenAI API key and try again."
	case KindRateLimited:
		return "Rate limit exceeded. Please wait a moment and try again."
	case KindBadRequest:
		return "Request error: " + f.Detail
	default:
		return "An unexpected error occurred: " + f.Detail
	}
}

// Classify maps any error to a *Failure. A nil error yields nil and an
// existing *Failure is returned unchanged.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	switch {
	case errors.Is(err, core.ErrUnauthorized):
		return &Failure{Kind: KindAuthentication, Err: err}
	case errors.Is(err, core.ErrRateLimited):
		return &Failure{Kind: KindRateLimited, Err: err}
	case errors.Is(err, core.ErrBadRequest):
		detail := err.Error()
		var pErr *core.ProviderError
		if errors.As(err, &pErr) && pErr.Message != "" {
			detail = pErr.Message
		}
		return &Failure{Kind: KindBadRequest, Detail: detail, Err: err}
	default:
		return &Failure{Kind: KindUnclassified, Detail: err.Error(), Err: err}
	}
}
