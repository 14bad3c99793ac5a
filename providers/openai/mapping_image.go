package openai

import (
	"strings"

	"github.com/petal-labs/mandala/core"
)

// mapImageGenerateRequest converts a core request to OpenAI format.
func mapImageGenerateRequest(req *core.ImageGenerateRequest) *openAIImageRequest {
	r := &openAIImageRequest{
		Model:          string(req.Model),
		Prompt:         req.Prompt,
		N:              req.N,
		Size:           string(req.Size),
		Quality:        string(req.Quality),
		ResponseFormat: string(req.ResponseFormat),
		User:           req.User,
	}

	// gpt-image models reject response_format and always answer with b64_json.
	if strings.HasPrefix(r.Model, "gpt-image") {
		r.ResponseFormat = ""
	}

	if r.N == 0 {
		r.N = 1
	}

	return r
}

// mapImageResponse converts an OpenAI response to core format.
func mapImageResponse(resp *openAIImageResponse) *core.ImageResponse {
	r := &core.ImageResponse{
		Created: resp.Created,
		Data:    make([]core.ImageData, len(resp.Data)),
	}

	for i, d := range resp.Data {
		r.Data[i] = core.ImageData{
			B64JSON:       d.B64JSON,
			URL:           d.URL,
			RevisedPrompt: d.RevisedPrompt,
		}
	}

	return r
}
