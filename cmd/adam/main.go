package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai41/adam/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "adam",
	Short: "Adam, the exhibition's curator AI",
	Long:  "Adam serves a gallery exhibition: a streaming curator chat backed by an OpenAI-compatible model, with a deterministic fallback when no model is configured.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.json", "config file path")
}

// loadConfig loads the config file, exiting on failure. Subcommands call
// this instead of handling config errors individually.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
