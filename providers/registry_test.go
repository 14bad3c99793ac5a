package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/petal-labs/mandala/core"
)

// mockGenerator implements core.ImageGenerator for testing.
type mockGenerator struct {
	id      string
	apiKey  core.Secret
	baseURL string
}

func (m *mockGenerator) ID() string { return m.id }
func (m *mockGenerator) GenerateImage(context.Context, *core.ImageGenerateRequest) (*core.ImageResponse, error) {
	return nil, nil
}

func TestRegister(t *testing.T) {
	Register("test-provider", func(apiKey core.Secret, opts FactoryOptions) core.ImageGenerator {
		return &mockGenerator{id: "test-provider"}
	})

	if !IsRegistered("test-provider") {
		t.Error("expected test-provider to be registered")
	}
	if IsRegistered("nonexistent") {
		t.Error("expected nonexistent to not be registered")
	}
}

func TestCreatePassesKeyAndOptions(t *testing.T) {
	Register("create-test", func(apiKey core.Secret, opts FactoryOptions) core.ImageGenerator {
		return &mockGenerator{id: "create-test", apiKey: apiKey, baseURL: opts.BaseURL}
	})

	gen, err := Create("create-test", core.NewSecret("sk-test"), FactoryOptions{BaseURL: "http://localhost:9999"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	mock, ok := gen.(*mockGenerator)
	if !ok {
		t.Fatalf("Create() returned %T, want *mockGenerator", gen)
	}
	if mock.apiKey.Expose() != "sk-test" {
		t.Error("factory did not receive the API key")
	}
	if mock.baseURL != "http://localhost:9999" {
		t.Errorf("baseURL = %q, want http://localhost:9999", mock.baseURL)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist", core.NewSecret("k"), FactoryOptions{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("error = %v, want unknown provider", err)
	}
}

func TestListSorted(t *testing.T) {
	Register("zz-last", func(core.Secret, FactoryOptions) core.ImageGenerator { return &mockGenerator{id: "zz-last"} })
	Register("aa-first", func(core.Secret, FactoryOptions) core.ImageGenerator { return &mockGenerator{id: "aa-first"} })

	names := List()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("List() not sorted: %v", names)
		}
	}
}
