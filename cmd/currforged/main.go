// Command currforged is the CurrForge server daemon.
// It wires the AI provider, PDF renderer, status store, and mailer together
// and serves the curriculum generation API.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/currforge/currforge/comms"
	"github.com/currforge/currforge/config"
	"github.com/currforge/currforge/curriculum"
	"github.com/currforge/currforge/internal/version"
	"github.com/currforge/currforge/mail"
	"github.com/currforge/currforge/pdf"
	"github.com/currforge/currforge/provider"
	_ "github.com/currforge/currforge/provider/mock"
	"github.com/currforge/currforge/server"
	"github.com/currforge/currforge/server/api"
	"github.com/currforge/currforge/status"
)

var configPath = flag.String("config", "currforge.yaml", "path to config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		log.Fatalf("Failed to load config %s: %v", *configPath, err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	logger.Info("starting currforged",
		"version", version.Version,
		"commit", version.Commit,
		"provider", cfg.Provider.Type,
	)

	base, err := provider.New(cfg.Provider.Type, provider.Config{
		APIKey:      cfg.Provider.APIKey,
		Model:       cfg.Provider.Model,
		BaseURL:     cfg.Provider.BaseURL,
		MaxTokens:   cfg.Provider.MaxTokens,
		Temperature: cfg.Provider.Temperature,
	})
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}
	var prov provider.Provider = base
	if cfg.Provider.MaxRetries > 0 {
		prov = provider.WithRetry(base, cfg.Provider.MaxRetries)
	}

	renderer, err := pdf.NewRenderer(cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	var store status.Store
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Fatalf("Failed to create data dir: %v", err)
		}
		db, err := status.NewSQLiteStore(filepath.Join(cfg.DataDir, "currforge.db"))
		if err != nil {
			log.Fatalf("Failed to open status store: %v", err)
		}
		defer db.Close()
		store = db
	} else {
		logger.Info("no data dir configured, tracking status in memory")
		store = status.NewMemoryStore()
	}

	notifier := buildNotifier(cfg, logger)

	bus := comms.NewInMemoryBus()
	generator := curriculum.NewGenerator(prov, renderer, bus, logger)
	generator.Progress = func(requestID, detail string) {
		if err := store.SetProgress(requestID, detail); err != nil {
			logger.Warn("progress update failed", "request", requestID, "error", err)
		}
	}

	handler := &api.Handler{
		Generator: generator,
		Provider:  prov,
		Store:     store,
		Notifier:  notifier,
		OutputDir: renderer.OutputDir(),
		Log:       logger,
	}
	srv := server.New(cfg.Server.Addr, handler, bus, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func buildNotifier(cfg *config.Config, logger *slog.Logger) mail.Notifier {
	if !cfg.Mail.Enabled || cfg.Mail.APIKey == "" {
		logger.Info("mail delivery disabled")
		return mail.Noop{Log: logger}
	}
	m, err := mail.NewMailchimp(cfg.Mail.APIKey, cfg.Mail.FromEmail, cfg.Mail.FromName, cfg.Server.PublicURL, logger)
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}
	if cfg.Mail.MarketingKey != "" && cfg.Mail.AudienceID != "" {
		audience, err := mail.NewAudience(cfg.Mail.MarketingKey, cfg.Mail.AudienceID, cfg.Mail.ServerPrefix)
		if err != nil {
			log.Fatalf("Failed to create audience client: %v", err)
		}
		m.Audience = audience
	}
	return m
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
