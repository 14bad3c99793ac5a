package commands

import (
	"errors"
	"io"
	"log/slog"

	"github.com/petal-labs/mandala/core"
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logTelemetry reports request timings through slog. Only metadata is
// logged; the error is reduced to its class.
type logTelemetry struct {
	logger *slog.Logger
}

func newLogTelemetry(logger *slog.Logger) core.TelemetryHook {
	if logger == nil {
		return core.NoopTelemetryHook{}
	}
	return logTelemetry{logger: logger}
}

func (t logTelemetry) OnRequestStart(e core.RequestStartEvent) {
	t.logger.Debug("request started",
		"provider", e.Provider,
		"model", string(e.Model),
		"operation", e.Operation,
	)
}

func (t logTelemetry) OnRequestEnd(e core.RequestEndEvent) {
	attrs := []any{
		"provider", e.Provider,
		"model", string(e.Model),
		"operation", e.Operation,
		"duration", e.Duration(),
	}
	if e.Bytes > 0 {
		attrs = append(attrs, "bytes", e.Bytes)
	}
	if e.Err != nil {
		t.logger.Warn("request failed", append(attrs, "error_class", errorClass(e.Err))...)
		return
	}
	t.logger.Info("request finished", attrs...)
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, core.ErrForbidden):
		return "forbidden"
	case errors.Is(err, core.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, core.ErrBadRequest):
		return "bad_request"
	case errors.Is(err, core.ErrNotFound):
		return "not_found"
	case errors.Is(err, core.ErrNetwork):
		return "network"
	case errors.Is(err, core.ErrDecode):
		return "decode"
	case errors.Is(err, core.ErrServer):
		return "server"
	default:
		return "other"
	}
}
