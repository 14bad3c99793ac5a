package mandala

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/imaging"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel core.ModelID = "dall-e-3"

// ErrNoImage is returned when the provider response holds no usable image.
var ErrNoImage = errors.New("no image returned")

// ProviderFactory builds an image generator for one credential.
// The credential arrives with each request, so generators are not shared.
type ProviderFactory func(apiKey core.Secret) (core.ImageGenerator, error)

// Result is everything a shell needs to present one generated mandala.
type Result struct {
	Seed          string
	Prompt        string
	RevisedPrompt string
	// ImageURL is empty when the image arrived inline.
	ImageURL   string
	Source     []byte
	SourceMIME string
	// Image is the decoded source image.
	Image     image.Image
	JPEG      []byte
	Flattened bool
	Filename  string
	Width     int
	Height    int
}

// Generator runs the validate, generate, fetch, normalize chain.
type Generator struct {
	newProvider ProviderFactory
	retriever   Retriever
	telemetry   core.TelemetryHook
	model       core.ModelID
}

// Option configures a Generator.
type Option func(*Generator)

// WithRetriever replaces the default HTTP retriever.
func WithRetriever(r Retriever) Option {
	return func(g *Generator) {
		if r != nil {
			g.retriever = r
		}
	}
}

// WithTelemetry sets the hook notified about generation and fetch calls.
func WithTelemetry(h core.TelemetryHook) Option {
	return func(g *Generator) {
		if h != nil {
			g.telemetry = h
		}
	}
}

// WithModel overrides DefaultModel. Empty values are ignored.
func WithModel(model core.ModelID) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// New creates a Generator that builds providers with factory.
func New(factory ProviderFactory, opts ...Option) *Generator {
	g := &Generator{
		newProvider: factory,
		retriever:   NewHTTPRetriever(nil),
		telemetry:   core.NoopTelemetryHook{},
		model:       DefaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured generation model.
func (g *Generator) Model() core.ModelID {
	return g.model
}

// Request returns the fixed generation request for seed.
func (g *Generator) Request(seed string) *core.ImageGenerateRequest {
	return &core.ImageGenerateRequest{
		Model:          g.model,
		Prompt:         BuildPrompt(seed),
		N:              1,
		Size:           core.ImageSize1024x1024,
		Quality:        core.ImageQualityStandard,
		ResponseFormat: core.ImageResponseURL,
	}
}

// Generate produces one mandala for seed. The credential is checked first,
// then the seed; neither failure touches the network. Any error returned is
// a *Failure.
func (g *Generator) Generate(ctx context.Context, seed string, credential core.Secret) (*Result, error) {
	if credential.IsBlank() {
		return nil, &Failure{Kind: KindMissingCredential}
	}
	word := strings.TrimSpace(seed)
	if word == "" {
		return nil, &Failure{Kind: KindMissingPromptSeed}
	}

	res, err := g.generate(ctx, word, core.NewSecret(strings.TrimSpace(credential.Expose())))
	if err != nil {
		return nil, Classify(err)
	}
	return res, nil
}

func (g *Generator) generate(ctx context.Context, word string, key core.Secret) (*Result, error) {
	if g.newProvider == nil {
		return nil, errors.New("no provider configured")
	}
	provider, err := g.newProvider(key)
	if err != nil {
		return nil, err
	}

	client := core.NewClient(provider, core.WithTelemetry(g.telemetry))
	req := g.Request(word)

	resp, err := client.GenerateImage(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, ErrNoImage
	}

	data := resp.Data[0]
	var source []byte
	switch {
	case data.URL != "":
		source, err = g.fetch(ctx, provider.ID(), data.URL)
	case data.B64JSON != "":
		source, err = data.GetBytes()
		if err != nil {
			err = fmt.Errorf("decode inline image: %w", err)
		}
	default:
		err = ErrNoImage
	}
	if err != nil {
		return nil, err
	}

	norm, err := imaging.Normalize(source)
	if err != nil {
		return nil, err
	}

	bounds := norm.Image.Bounds()
	return &Result{
		Seed:          word,
		Prompt:        req.Prompt,
		RevisedPrompt: data.RevisedPrompt,
		ImageURL:      data.URL,
		Source:        source,
		SourceMIME:    http.DetectContentType(source),
		Image:         norm.Image,
		JPEG:          norm.JPEG,
		Flattened:     norm.Flattened,
		Filename:      DownloadName(word),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
	}, nil
}

func (g *Generator) fetch(ctx context.Context, providerID, imageURL string) ([]byte, error) {
	start := time.Now()
	g.telemetry.OnRequestStart(core.RequestStartEvent{
		Provider:  providerID,
		Model:     g.model,
		Operation: core.OperationFetch,
		Start:     start,
	})

	data, err := g.retriever.Retrieve(ctx, imageURL)

	g.telemetry.OnRequestEnd(core.RequestEndEvent{
		Provider:  providerID,
		Model:     g.model,
		Operation: core.OperationFetch,
		Start:     start,
		End:       time.Now(),
		Bytes:     len(data),
		Err:       err,
	})
	return data, err
}
