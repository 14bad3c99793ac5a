package core

import (
	"testing"
	"time"
)

func TestRequestEndEventDuration(t *testing.T) {
	start := time.Now()
	event := RequestEndEvent{
		Provider:  "openai",
		Model:     "dall-e-3",
		Operation: OperationGenerate,
		Start:     start,
		End:       start.Add(1500 * time.Millisecond),
	}

	if got := event.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}
}

func TestNoopTelemetryHook(t *testing.T) {
	var hook TelemetryHook = NoopTelemetryHook{}
	hook.OnRequestStart(RequestStartEvent{Provider: "openai"})
	hook.OnRequestEnd(RequestEndEvent{Provider: "openai"})
}
