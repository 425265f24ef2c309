// Package provider implements AI model provider integrations for content
// generation. Providers are registered by type and constructed from config,
// so new backends can be added without touching calling code.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// Usage reports token consumption for a single generation call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response is the result of a generation call.
type Response struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Provider generates content from a system prompt and a user prompt.
type Provider interface {
	// Generate sends the prompts to the backing model and returns the
	// generated text. An empty completion is an error.
	Generate(ctx context.Context, system, prompt string) (*Response, error)

	// Name returns the provider type, e.g. "anthropic".
	Name() string
}

// ErrEmptyCompletion is returned when the backend replies successfully but
// with no usable text content.
var ErrEmptyCompletion = errors.New("provider: empty completion")

// APIError is an error response from a provider's HTTP API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Config carries the settings needed to construct a provider.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
}

// Factory constructs a provider from config.
type Factory func(cfg Config) (Provider, error)

var factories = map[string]Factory{}

// Register makes a provider type available to New. It panics on duplicate
// registration, which indicates a programming error.
func Register(name string, f Factory) {
	if _, dup := factories[name]; dup {
		panic("provider: duplicate registration for " + name)
	}
	factories[name] = f
}

// New constructs a provider of the given type.
func New(name string, cfg Config) (Provider, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("provider: unknown provider type %q", name)
	}
	return f(cfg)
}

// Types returns the registered provider type names.
func Types() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
