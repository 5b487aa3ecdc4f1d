package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/history"
	"github.com/geotech-lab/scholarsync/internal/report"
)

// DefaultHistoryLimit is the default number of snapshots listed.
const DefaultHistoryLimit = 20

var (
	historyUser  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded run snapshots",
	Long: `List snapshots recorded by previous runs, newest first.

Snapshots are appended to the JSONL file named by history_path
(SCHOLAR_HISTORY_PATH or --history on update). The file is loaded into an
in-memory SQLite database for querying.

Examples:
  scholarsync history
  scholarsync history --user s55YrBYAAAAJ --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyUser, "user", "", "Only list snapshots for this profile ID")
	historyCmd.Flags().IntVar(&historyLimit, "limit", DefaultHistoryLimit, "Maximum snapshots to list (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

// HistoryResult is the response for the history command.
type HistoryResult struct {
	Total     int                `json:"total"`
	Snapshots []history.Snapshot `json:"snapshots"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if cfg.HistoryPath == "" {
		exitWithError(ExitConfigError, "history_path is not set\n\nSet SCHOLAR_HISTORY_PATH or history_path in %s.", config.DefaultConfigFile)
	}

	db, err := history.OpenDB(history.MemoryDB)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	total, err := db.RebuildFromJSONL(cfg.HistoryPath)
	if err != nil {
		exitWithError(ExitError, "loading history: %v", err)
	}

	snaps, err := db.List(historyUser, historyLimit)
	if err != nil {
		exitWithError(ExitError, "querying history: %v", err)
	}
	if snaps == nil {
		snaps = []history.Snapshot{}
	}

	if jsonOutput {
		return outputJSON(HistoryResult{Total: total, Snapshots: snaps})
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots recorded")
		return nil
	}
	for _, s := range snaps {
		fmt.Println(formatSnapshotHuman(s))
	}
	return nil
}

// formatSnapshotHuman renders one snapshot as a single line.
func formatSnapshotHuman(s history.Snapshot) string {
	line := fmt.Sprintf("%s  %-14s %-8s citations=%d h-index=%d", s.FetchedAt, s.UserID, s.Provider, s.Citations, s.HIndex)
	if s.Counts != nil {
		line += formatCounts(*s.Counts)
	}
	return line
}

func formatCounts(c report.Counts) string {
	return fmt.Sprintf(" international=%d korean=%d conference=%d", c.International, c.Korean, c.Conference)
}
