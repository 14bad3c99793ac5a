package core

import (
	"errors"
	"strings"
	"testing"
)

func TestProviderErrorImplementsError(t *testing.T) {
	err := &ProviderError{
		Provider:  "openai",
		Status:    401,
		RequestID: "req_123",
		Code:      "invalid_api_key",
		Message:   "Incorrect API key provided",
	}

	var _ error = err

	errStr := err.Error()
	for _, want := range []string{"openai", "401", "req_123", "invalid_api_key"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("Error() = %q, should contain %q", errStr, want)
		}
	}
}

func TestProviderErrorWithoutRequestID(t *testing.T) {
	err := &ProviderError{
		Provider: "openai",
		Status:   429,
		Code:     "rate_limit_exceeded",
		Message:  "Rate limit exceeded",
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "429") {
		t.Error("Error() should contain status code")
	}
	if strings.Contains(errStr, "request_id") {
		t.Error("Error() should not contain request_id when empty")
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"unauthorized", ErrUnauthorized},
		{"rate limited", ErrRateLimited},
		{"bad request", ErrBadRequest},
		{"server", ErrServer},
		{"network", ErrNetwork},
		{"decode", ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ProviderError{Provider: "openai", Err: tt.sentinel}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(err, %v) = false, want true", tt.sentinel)
			}
		})
	}
}

func TestProviderErrorAs(t *testing.T) {
	var wrapped error = &ProviderError{Provider: "openai", Status: 400, Message: "bad size", Err: ErrBadRequest}

	var pErr *ProviderError
	if !errors.As(wrapped, &pErr) {
		t.Fatal("errors.As should find ProviderError")
	}
	if pErr.Message != "bad size" {
		t.Errorf("Message = %q, want %q", pErr.Message, "bad size")
	}
}
