package core

import (
	"context"
	"encoding/base64"
	"fmt"
)

// ModelID identifies a model offered by a provider.
type ModelID string

// ImageGenerator is implemented by providers that turn a text prompt into images.
type ImageGenerator interface {
	// ID returns the provider identifier (e.g., "openai").
	ID() string

	// GenerateImage generates images from a text prompt.
	GenerateImage(ctx context.Context, req *ImageGenerateRequest) (*ImageResponse, error)
}

// ImageSize represents supported image dimensions.
type ImageSize string

const (
	ImageSize1024x1024 ImageSize = "1024x1024"
	ImageSize1792x1024 ImageSize = "1792x1024"
	ImageSize1024x1792 ImageSize = "1024x1792"
)

// IsValid reports whether the image size is a recognized value.
func (s ImageSize) IsValid() bool {
	switch s {
	case ImageSize1024x1024, ImageSize1792x1024, ImageSize1024x1792:
		return true
	default:
		return false
	}
}

// ImageQuality represents the rendering quality level.
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"
)

// IsValid reports whether the image quality is a recognized value.
func (q ImageQuality) IsValid() bool {
	switch q {
	case ImageQualityStandard, ImageQualityHD:
		return true
	default:
		return false
	}
}

// ImageResponseFormat selects how generated images are returned.
type ImageResponseFormat string

const (
	ImageResponseURL     ImageResponseFormat = "url"
	ImageResponseB64JSON ImageResponseFormat = "b64_json"
)

// IsValid reports whether the response format is a recognized value.
func (f ImageResponseFormat) IsValid() bool {
	return f == ImageResponseURL || f == ImageResponseB64JSON
}

// ImageGenerateRequest represents a request to generate images.
type ImageGenerateRequest struct {
	Model  ModelID `json:"model"`
	Prompt string  `json:"prompt"`

	// Optional parameters
	N              int                 `json:"n,omitempty"`               // Number of images to generate (default 1)
	Size           ImageSize           `json:"size,omitempty"`            // Image dimensions
	Quality        ImageQuality        `json:"quality,omitempty"`         // Rendering quality
	ResponseFormat ImageResponseFormat `json:"response_format,omitempty"` // "url" or "b64_json"
	User           string              `json:"user,omitempty"`            // User identifier
}

// Validate checks the fields every provider needs. Optional enums are only
// checked when set.
func (r *ImageGenerateRequest) Validate() error {
	if r.Model == "" {
		return ErrModelRequired
	}
	if r.Prompt == "" {
		return ErrPromptRequired
	}
	if r.Size != "" && !r.Size.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidImageSize, r.Size)
	}
	if r.Quality != "" && !r.Quality.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidImageQuality, r.Quality)
	}
	if r.ResponseFormat != "" && !r.ResponseFormat.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidResponseFormat, r.ResponseFormat)
	}
	return nil
}

// ImageResponse represents a response containing generated images.
type ImageResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData represents a single generated image.
type ImageData struct {
	B64JSON       string `json:"b64_json,omitempty"`
	URL           string `json:"url,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// GetBytes decodes and returns inline image data.
// It returns nil, nil when the image is only available by URL.
func (d ImageData) GetBytes() ([]byte, error) {
	if d.B64JSON != "" {
		return base64.StdEncoding.DecodeString(d.B64JSON)
	}
	return nil, nil // URL must be fetched separately
}
