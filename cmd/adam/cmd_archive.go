package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd, archivePruneCmd)
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage conversation archives",
}

var archiveListCmd = &cobra.Command{
	Use:   "list [limit]",
	Short: "List archive files, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := 50
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid limit: %s", args[0])
			}
			limit = n
		}

		archives, err := openArchives()
		if err != nil {
			return err
		}
		summaries, err := archives.List(limit)
		if err != nil {
			return fmt.Errorf("list archives: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No archives found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tSESSION\tMESSAGES\tARCHIVED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.Filename, s.SessionID, s.MessageCount, s.Datetime)
		}
		return w.Flush()
	},
}

var archivePruneCmd = &cobra.Command{
	Use:   "prune [keep]",
	Short: "Delete the oldest archives, keeping the newest N",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		keep := cfg.Archive.MaxFiles
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid keep count: %s", args[0])
			}
			keep = n
		}

		archives, err := openArchives()
		if err != nil {
			return err
		}
		removed, err := archives.Prune(keep)
		if err != nil {
			return fmt.Errorf("prune archives: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Removed %d archive(s), keeping at most %d.\n", removed, keep)
		return nil
	},
}
