// Command prospecting runs the Prospect Lifecycle Engine HTTP server: the
// gin API, the campaign cron sweeps, and the weekly ready-to-send sweep,
// all wired against a single Postgres pool.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eurekai25/prospecting-engine/pkg/api"
	"github.com/eurekai25/prospecting-engine/pkg/config"
	"github.com/eurekai25/prospecting-engine/pkg/database"
	"github.com/eurekai25/prospecting-engine/pkg/deliverable"
	"github.com/eurekai25/prospecting-engine/pkg/llmadapter"
	"github.com/eurekai25/prospecting-engine/pkg/masking"
	"github.com/eurekai25/prospecting-engine/pkg/querybank"
	"github.com/eurekai25/prospecting-engine/pkg/repository"
	"github.com/eurekai25/prospecting-engine/pkg/scheduler"
	"github.com/eurekai25/prospecting-engine/pkg/slack"
	"github.com/eurekai25/prospecting-engine/pkg/testrunner"
	"github.com/eurekai25/prospecting-engine/pkg/version"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	envPath := flag.String("env-file", ".env", "path to a .env file to load before reading configuration")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil {
		slog.Info("no .env file loaded", "path", *envPath, "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	stats := cfg.Stats()
	slog.Info("starting "+version.Full(),
		"openai_configured", stats.OpenAIConfigured,
		"anthropic_configured", stats.AnthropicConfigured,
		"gemini_configured", stats.GeminiConfigured,
		"admin_enabled", stats.AdminEnabled,
		"querybank_overridden", stats.QueryBankOverridden,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := database.NewClient(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	overrides, err := querybank.LoadOverridesFile(cfg.QueryBankOverridesPath)
	if err != nil {
		slog.Error("failed to load querybank overrides", "error", err)
		os.Exit(1)
	}
	bank, err := querybank.Load(overrides)
	if err != nil {
		slog.Error("failed to load querybank", "error", err)
		os.Exit(1)
	}

	registry := llmadapter.NewRegistry(map[string]string{
		"openai":    cfg.OpenAIAPIKey,
		"anthropic": cfg.AnthropicAPIKey,
		"gemini":    cfg.GeminiAPIKey,
	}, &http.Client{Timeout: testrunner.DefaultCallTimeout})
	slog.Info("ai adapters active", "count", registry.Len(), "models", registry.Active())

	masker := masking.NewService()
	repo := repository.New(dbClient.Pool)

	runner := &testrunner.Runner{
		Registry:    registry,
		Bank:        bank,
		CallTimeout: testrunner.DefaultCallTimeout,
		Mask:        masker.MaskFunc(),
		Concurrency: cfg.CampaignConcurrency,
	}

	notifier := slack.NewService(slack.ServiceConfig{
		Token:   getEnv("SLACK_TOKEN", ""),
		Channel: getEnv("SLACK_CHANNEL", ""),
	})

	sched := scheduler.New(repo, runner, notifier)
	if err := sched.Start(ctx); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	gen := deliverable.New(cfg.SenderSignature, cfg.BaseURL, cfg.SendQueueDir)
	server := api.NewServer(repo, runner, sched, gen, cfg.AdminToken)

	httpPort := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + httpPort,
		Handler: server.Router(),
	}

	go func() {
		slog.Info("http server listening", "port", httpPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
	slog.Info("shutdown complete")
}
