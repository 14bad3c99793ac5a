package mandala

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Retriever downloads the bytes behind an image reference.
type Retriever interface {
	Retrieve(ctx context.Context, imageURL string) ([]byte, error)
}

// FetchError reports a non-2xx response from the image host.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch image: unexpected status %s", e.Status)
}

// HTTPRetriever fetches images with a plain GET.
type HTTPRetriever struct {
	client *http.Client
}

// NewHTTPRetriever returns a retriever using client, or http.DefaultClient when nil.
func NewHTTPRetriever(client *http.Client) *HTTPRetriever {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRetriever{client: client}
}

// Retrieve performs one GET of imageURL and returns the full body.
// Errors never include the URL, which is usually signed.
func (r *HTTPRetriever) Retrieve(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, errors.New("fetch image: invalid image url")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		var uErr *url.Error
		if errors.As(err, &uErr) {
			err = uErr.Err
		}
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch image: read body: %w", err)
	}
	return data, nil
}
