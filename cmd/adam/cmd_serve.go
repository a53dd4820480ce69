package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ai41/adam/internal/archive"
	"github.com/ai41/adam/internal/catalog"
	"github.com/ai41/adam/internal/curator"
	"github.com/ai41/adam/internal/gateway"
	"github.com/ai41/adam/internal/scheduler"
	"github.com/ai41/adam/internal/server"
	"github.com/ai41/adam/internal/session"
	"github.com/ai41/adam/internal/telegram"
	"github.com/ai41/adam/pkg/llm"
	"github.com/ai41/adam/pkg/llm/openai"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the curator service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)
	logger := slog.Default()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	cat := catalog.New(cfg.BaseDir, cfg.DataDir, logger)
	sessions := session.NewStore()
	archives, err := archive.NewStore(cfg.ArchiveDir(), logger)
	if err != nil {
		return err
	}

	// Without an API key the orchestrator runs in fallback-only mode.
	var provider llm.Provider
	if cfg.LLM.APIKey != "" {
		provider = openai.New(&llm.Config{
			BaseURL:     cfg.LLM.BaseURL,
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.Timeout(),
		})
	} else {
		logger.Warn("no API key configured, running in fallback-only mode")
	}

	orchestrator := curator.New(curator.Options{
		Provider:      provider,
		Sessions:      sessions,
		Catalog:       cat,
		Prompts:       curator.NewPromptBuilder(cat, cfg.LLM.Model, cfg.LLM.InfoTokenBudget, logger),
		Model:         cfg.LLM.Model,
		HistoryWindow: cfg.HistoryWindow,
		Timeout:       cfg.Timeout(),
		Logger:        logger,
	})

	gw := gateway.New(orchestrator, sessions, archives, cfg.MaxConcurrent, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw.Start(ctx)
	defer gw.Stop()

	sched := scheduler.New(logger, scheduler.Job{
		Name:     "archive-prune",
		Schedule: cfg.Archive.PruneSchedule,
		Run: func() {
			removed, err := archives.Prune(cfg.Archive.MaxFiles)
			if err != nil {
				logger.Error("archive prune failed", "error", err)
				return
			}
			if removed > 0 {
				logger.Info("archives pruned", "removed", removed, "keep", cfg.Archive.MaxFiles)
			}
		},
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	if cfg.Telegram.Token != "" {
		adapter, err := telegram.New(cfg.Telegram.Token, gw, orchestrator, logger)
		if err != nil {
			return fmt.Errorf("create telegram adapter: %w", err)
		}
		go adapter.Start(ctx)
		logger.Info("telegram adapter started")
	}

	srv := server.New(gw, orchestrator, cat, archives, cfg.BaseDir, cfg.PublicURL, logger)
	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: srv,
	}

	go func() {
		logger.Info("adam started",
			"listen", cfg.Listen,
			"base_dir", cfg.BaseDir,
			"data_dir", cfg.DataDir,
			"model", cfg.LLM.Model,
			"api_configured", provider != nil,
			"artworks", len(cat.All()),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return httpServer.Shutdown(context.Background())
}
