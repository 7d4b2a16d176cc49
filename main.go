package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telvia/assistant/internal/adapter/llm"
	"github.com/telvia/assistant/internal/adapter/retrieval"
	"github.com/telvia/assistant/internal/adapter/webhook"
	"github.com/telvia/assistant/internal/agents"
	"github.com/telvia/assistant/internal/classifier"
	"github.com/telvia/assistant/internal/config"
	store "github.com/telvia/assistant/internal/repository"
	"github.com/telvia/assistant/internal/sentiment"
	"github.com/telvia/assistant/internal/service"
	transport "github.com/telvia/assistant/internal/transport/http"
	"github.com/telvia/assistant/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	slog.Info("starting assistant",
		"http_port", cfg.HTTPPort,
		"database", cfg.DatabaseURL,
		"model", cfg.OpenAIModel,
	)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		slog.Error("failed to initialize policy engine", "error", err)
		os.Exit(1)
	}

	// Initialize classifier and handlers
	cls := classifier.New(llmClient, db, sentiment.NewLexiconScorer(), cfg.ClassifyTimeout)
	retriever := retrieval.NewKeywordRetriever(db)
	registry := agents.NewRegistry(
		agents.NewBillingHandler(llmClient, db),
		agents.NewNetworkHandler(llmClient, db),
		agents.NewServiceHandler(llmClient, db),
		agents.NewKnowledgeHandler(llmClient, retriever, db),
		agents.NewCustomerHandler(llmClient, db, policyEngine),
	)

	// Initialize service
	svc := service.New(db, cls, registry, webhook.NewClient(cfg.WebhookURL), cfg)

	// Create HTTP server
	server := transport.NewServer(svc)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("API started", "port", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
