package web

import (
	"context"
	"errors"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/mandala"
)

// failureAttrs describes f for the logs without any provider text. Provider
// messages can echo the submitted key, so only status and code are kept.
func failureAttrs(ctx context.Context, f *mandala.Failure) []any {
	attrs := []any{"request_id", RequestID(ctx), "kind", f.Kind.String()}

	var provErr *core.ProviderError
	if errors.As(f, &provErr) {
		attrs = append(attrs, "provider", provErr.Provider, "status", provErr.Status)
		if provErr.Code != "" {
			attrs = append(attrs, "code", provErr.Code)
		}
		if provErr.RequestID != "" {
			attrs = append(attrs, "provider_request_id", provErr.RequestID)
		}
		return attrs
	}

	var fetchErr *mandala.FetchError
	if errors.As(f, &fetchErr) {
		attrs = append(attrs, "fetch_status", fetchErr.StatusCode)
	}
	return attrs
}
