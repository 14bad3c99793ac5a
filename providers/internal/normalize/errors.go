// Package normalize turns provider HTTP failures into *core.ProviderError values.
package normalize

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/petal-labs/mandala/core"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// openAIStyleErrorResponse represents providers that return:
// {"error":{"message":"...","type":"...","code":"..."}}
type openAIStyleErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ResponseError reads a non-2xx response and normalizes it.
// The request id is taken from the x-request-id header when present.
func ResponseError(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return OpenAIStyleProviderError(provider, resp.StatusCode, body, resp.Header.Get("x-request-id"))
}

// OpenAIStyleProviderError normalizes providers that use OpenAI-style error envelopes.
// A body that is not JSON is surfaced as the message.
func OpenAIStyleProviderError(provider string, status int, body []byte, requestID string) error {
	var errResp openAIStyleErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil && len(body) > 0 {
		errResp.Error.Message = string(body)
	}

	code := errResp.Error.Code
	if code == "" {
		code = errResp.Error.Type
	}

	return ProviderError(provider, status, requestID, code, errResp.Error.Message, nil)
}

// NetworkError wraps transport failures as provider-specific network errors.
func NetworkError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "network_error",
		Message:  err.Error(),
		Err:      core.ErrNetwork,
	}
}

// DecodeError wraps decode/parsing failures as provider-specific decode errors.
func DecodeError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "decode_error",
		Message:  err.Error(),
		Err:      core.ErrDecode,
	}
}

// ProviderError constructs a normalized ProviderError.
// If message is empty, HTTP status text is used.
// If sentinel is nil, status-based mapping is applied.
func ProviderError(provider string, status int, requestID, code, message string, sentinel error) error {
	if message == "" {
		message = http.StatusText(status)
	}
	if sentinel == nil {
		sentinel = SentinelForStatus(status)
	}
	return &core.ProviderError{
		Provider:  provider,
		Status:    status,
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Err:       sentinel,
	}
}

// SentinelForStatus maps an HTTP status code to a core sentinel error.
func SentinelForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return core.ErrBadRequest
	case status == http.StatusUnauthorized:
		return core.ErrUnauthorized
	case status == http.StatusForbidden:
		return core.ErrForbidden
	case status == http.StatusNotFound:
		return core.ErrNotFound
	case status == http.StatusTooManyRequests:
		return core.ErrRateLimited
	default:
		return core.ErrServer
	}
}
