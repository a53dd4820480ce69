package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ai41/adam/internal/catalog"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration status and catalog summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		cat := catalog.New(cfg.BaseDir, cfg.DataDir, logger)
		artworks := cat.All()

		fmt.Fprintf(os.Stdout, "Model: %s\n", cfg.LLM.Model)
		if cfg.LLM.APIKey != "" {
			fmt.Fprintln(os.Stdout, "Mode: model-backed")
		} else {
			fmt.Fprintln(os.Stdout, "Mode: fallback (no API key)")
		}
		fmt.Fprintf(os.Stdout, "Artist: %s\n", cat.ArtistName())
		fmt.Fprintf(os.Stdout, "Artworks: %d\n", len(artworks))
		fmt.Fprintf(os.Stdout, "Base dir: %s\n", cfg.BaseDir)
		fmt.Fprintf(os.Stdout, "Archive dir: %s\n", cfg.ArchiveDir())
		return nil
	},
}
