package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/providers/internal/normalize"
)

// GenerateImage generates images from a text prompt using the Image API.
func (p *OpenAI) GenerateImage(ctx context.Context, req *core.ImageGenerateRequest) (*core.ImageResponse, error) {
	openaiReq := mapImageGenerateRequest(req)

	body, err := json.Marshal(openaiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.config.BaseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range p.buildHeaders() {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, normalize.NetworkError(providerID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, normalize.ResponseError(providerID, resp)
	}

	var openaiResp openAIImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return nil, normalize.DecodeError(providerID, err)
	}

	if openaiResp.Error != nil {
		code := openaiResp.Error.Code
		if code == "" {
			code = openaiResp.Error.Type
		}
		return nil, normalize.ProviderError(providerID, resp.StatusCode, resp.Header.Get("x-request-id"),
			code, openaiResp.Error.Message, core.ErrBadRequest)
	}

	return mapImageResponse(&openaiResp), nil
}
