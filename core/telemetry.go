package core

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// # Security Considerations
//
// Event types never include sensitive data:
//   - API keys are never included (stored separately as core.Secret)
//   - Prompt content is never included
//   - Image bytes and URLs are never included
//
// Only operational metadata is exposed (provider, model, operation, timing).
// Never add fields that could contain API keys, user prompts or signed URLs.
type TelemetryHook interface {
	// OnRequestStart is called when a request begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when a request completes.
	OnRequestEnd(e RequestEndEvent)
}

// Operation names reported in telemetry events.
const (
	OperationGenerate = "generate"
	OperationFetch    = "fetch"
)

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Provider  string    // Provider identifier (e.g., "openai")
	Model     ModelID   // Model being called
	Operation string    // OperationGenerate or OperationFetch
	Start     time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
//
// The Err field carries the classified error value. Hooks should log its kind
// (errors.Is against the sentinels) rather than echo provider payloads.
type RequestEndEvent struct {
	Provider  string    // Provider identifier
	Model     ModelID   // Model that was called
	Operation string    // OperationGenerate or OperationFetch
	Start     time.Time // When the request started
	End       time.Time // When the request completed
	Bytes     int       // Payload size for fetches, 0 otherwise
	Err       error     // Error if request failed, nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Use this as a default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
