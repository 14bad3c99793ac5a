package core

import (
	"context"
	"time"
)

// Client wraps an ImageGenerator with validation and telemetry.
// Client is safe for concurrent use when the generator is.
type Client struct {
	generator ImageGenerator
	telemetry TelemetryHook
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Client with the given generator and options.
func NewClient(g ImageGenerator, opts ...ClientOption) *Client {
	c := &Client{
		generator: g,
		telemetry: NoopTelemetryHook{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTelemetry sets the telemetry hook for the client.
func WithTelemetry(h TelemetryHook) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// GenerateImage validates req, calls the generator once and reports the call
// to the telemetry hook. Failures are returned as-is; there is no retry.
func (c *Client) GenerateImage(ctx context.Context, req *ImageGenerateRequest) (*ImageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	providerID := c.generator.ID()

	c.telemetry.OnRequestStart(RequestStartEvent{
		Provider:  providerID,
		Model:     req.Model,
		Operation: OperationGenerate,
		Start:     start,
	})

	resp, err := c.generator.GenerateImage(ctx, req)

	c.telemetry.OnRequestEnd(RequestEndEvent{
		Provider:  providerID,
		Model:     req.Model,
		Operation: OperationGenerate,
		Start:     start,
		End:       time.Now(),
		Err:       err,
	})

	return resp, err
}
