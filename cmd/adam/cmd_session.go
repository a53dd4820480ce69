package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ai41/adam/internal/archive"
	"github.com/ai41/adam/internal/types"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd, sessionShowCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect archived sessions",
}

func openArchives() (*archive.Store, error) {
	cfg := loadConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return archive.NewStore(cfg.ArchiveDir(), logger)
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		archives, err := openArchives()
		if err != nil {
			return err
		}
		summaries, err := archives.List(100)
		if err != nil {
			return fmt.Errorf("list archives: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No archived sessions found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tMESSAGES\tARCHIVED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", s.SessionID, s.MessageCount, s.Datetime)
		}
		return w.Flush()
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the latest archived transcript for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archives, err := openArchives()
		if err != nil {
			return err
		}
		record, err := archives.Latest(types.SessionID(args[0]))
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		if record == nil {
			return fmt.Errorf("no archive for session: %s", args[0])
		}

		fmt.Fprintf(os.Stdout, "Session %s, archived %s\n\n", record.SessionID, record.Datetime)
		for _, turn := range record.Messages {
			fmt.Fprintf(os.Stdout, "[%s] %s\n", turn.Role, turn.Content)
		}
		return nil
	},
}
