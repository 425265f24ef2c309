package provider

import "fmt"

// Model describes a model a provider can use.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListModels returns the known models for a provider type. The lists are
// static; providers that gain model-listing endpoints can replace them.
func ListModels(providerType string) ([]Model, error) {
	switch providerType {
	case "anthropic":
		return []Model{
			{ID: "claude-3-haiku-20240307", Name: "Claude 3 Haiku", Description: "Fast, cost-effective generation"},
			{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet", Description: "Higher quality, slower"},
			{ID: "claude-3-opus-20240229", Name: "Claude 3 Opus", Description: "Highest quality, most expensive"},
		}, nil
	case "openai":
		return []Model{
			{ID: "gpt-4o-mini", Name: "GPT-4o mini", Description: "Fast, cost-effective generation"},
			{ID: "gpt-4o", Name: "GPT-4o", Description: "Higher quality, slower"},
		}, nil
	case "mock":
		return []Model{
			{ID: "mock", Name: "Mock", Description: "Canned responses for testing"},
		}, nil
	default:
		return nil, fmt.Errorf("provider: unknown provider type %q", providerType)
	}
}
