// Package config defines the CurrForge application configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level CurrForge configuration.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Mail     MailConfig     `json:"mail" yaml:"mail"`
	// OutputDir is where rendered PDFs are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	// DataDir holds the status database. Empty means in-memory tracking only.
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"` // listen address, e.g., ":3000"
	// PublicURL is the externally reachable base URL used in download links.
	PublicURL string `json:"public_url" yaml:"public_url"`
}

// ProviderConfig selects and configures the content provider.
type ProviderConfig struct {
	Type        string  `json:"type" yaml:"type"` // "anthropic", "openai", "mock"
	APIKey      string  `json:"api_key" yaml:"api_key"`
	Model       string  `json:"model,omitempty" yaml:"model"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens"`
	MaxRetries  int     `json:"max_retries,omitempty" yaml:"max_retries"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature"`
}

// MailConfig controls curriculum delivery email.
type MailConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	APIKey    string `json:"api_key" yaml:"api_key"` // Mailchimp Transactional key
	FromEmail string `json:"from_email" yaml:"from_email"`
	FromName  string `json:"from_name" yaml:"from_name"`
	// Marketing audience tracking (optional).
	MarketingKey string `json:"marketing_key,omitempty" yaml:"marketing_key"`
	AudienceID   string `json:"audience_id,omitempty" yaml:"audience_id"`
	ServerPrefix string `json:"server_prefix,omitempty" yaml:"server_prefix"` // e.g., "us21"
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":3000",
			PublicURL: "http://localhost:3000",
		},
		Provider: ProviderConfig{
			Type:       "anthropic",
			APIKey:     os.Getenv("ANTHROPIC_API_KEY"),
			MaxRetries: 2,
		},
		Mail: MailConfig{
			FromEmail: "noreply@currforge.com",
			FromName:  "CurrForge",
		},
		OutputDir: "./generated-pdfs",
		LogLevel:  "info",
	}
}

// Load reads a YAML config file and returns the parsed configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
