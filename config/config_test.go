package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":3000" {
		t.Errorf("unexpected default addr %q", cfg.Server.Addr)
	}
	if cfg.Provider.Type != "anthropic" {
		t.Errorf("unexpected default provider %q", cfg.Provider.Type)
	}
	if cfg.Provider.MaxRetries != 2 {
		t.Errorf("unexpected default retries %d", cfg.Provider.MaxRetries)
	}
	if cfg.OutputDir == "" {
		t.Error("expected a default output dir")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currforge.yaml")
	data := `
server:
  addr: ":8080"
  public_url: "https://api.currforge.com"
provider:
  type: openai
  model: gpt-4o
  max_retries: 5
mail:
  enabled: true
  api_key: mc-key
output_dir: /var/lib/currforge/pdfs
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr not overridden: %q", cfg.Server.Addr)
	}
	if cfg.Provider.Type != "openai" || cfg.Provider.Model != "gpt-4o" {
		t.Errorf("provider not overridden: %+v", cfg.Provider)
	}
	if cfg.Provider.MaxRetries != 5 {
		t.Errorf("retries not overridden: %d", cfg.Provider.MaxRetries)
	}
	if !cfg.Mail.Enabled || cfg.Mail.APIKey != "mc-key" {
		t.Errorf("mail not overridden: %+v", cfg.Mail)
	}
	// Unset keys keep their defaults.
	if cfg.Mail.FromEmail != "noreply@currforge.com" {
		t.Errorf("default from address lost: %q", cfg.Mail.FromEmail)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level not overridden: %q", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
