package openai

import (
	"testing"

	"github.com/petal-labs/mandala/core"
)

func TestMapImageGenerateRequest(t *testing.T) {
	r := mapImageGenerateRequest(&core.ImageGenerateRequest{
		Model:          "dall-e-3",
		Prompt:         "A black and white mandala inspired by peace",
		Size:           core.ImageSize1024x1024,
		Quality:        core.ImageQualityStandard,
		ResponseFormat: core.ImageResponseURL,
	})

	if r.N != 1 {
		t.Errorf("N = %d, want default 1", r.N)
	}
	if r.ResponseFormat != "url" {
		t.Errorf("ResponseFormat = %q, want url", r.ResponseFormat)
	}
	if r.Size != "1024x1024" {
		t.Errorf("Size = %q, want 1024x1024", r.Size)
	}
}

func TestMapImageGenerateRequestGPTImage(t *testing.T) {
	r := mapImageGenerateRequest(&core.ImageGenerateRequest{
		Model:          "gpt-image-1",
		Prompt:         "p",
		ResponseFormat: core.ImageResponseURL,
	})

	if r.ResponseFormat != "" {
		t.Errorf("ResponseFormat = %q, want empty for gpt-image models", r.ResponseFormat)
	}
}

func TestMapImageResponse(t *testing.T) {
	resp := mapImageResponse(&openAIImageResponse{
		Created: 42,
		Data: []openAIImageData{
			{URL: "https://example.com/1.png"},
			{B64JSON: "aGVsbG8="},
		},
	})

	if resp.Created != 42 {
		t.Errorf("Created = %d, want 42", resp.Created)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].URL != "https://example.com/1.png" {
		t.Errorf("Data[0].URL = %q", resp.Data[0].URL)
	}
	if resp.Data[1].B64JSON != "aGVsbG8=" {
		t.Errorf("Data[1].B64JSON = %q", resp.Data[1].B64JSON)
	}
}
