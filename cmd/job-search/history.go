// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/job-search/internal/history"
	"github.com/pdiddy/job-search/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous search runs recorded with --history-db",
	Long: `History reads the SQLite run history written by "search --history-db".
Without --run it lists the most recent runs; with --run it prints the
matching titles of one run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyCmd.Flags().String("run", "", "print the matching titles of this run ID")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("history_db")
	if dbPath == "" {
		return fmt.Errorf("no history database: set --history-db or history_db in the config file")
	}

	store, err := history.Open(types.HistoryConfig{
		Path:       dbPath,
		MaxResults: viper.GetInt("history_max_results"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetString("run"); runID != "" {
		run, err := store.Get(ctx, runID)
		if err != nil {
			return err
		}
		postings, err := store.Titles(ctx, runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, postings)
		}
		fmt.Fprintf(out, "%s  %q  %d of %d\n", run.StartedAt.Format("2006-01-02 15:04"), run.SearchText, run.Matched, run.Total)
		for _, p := range postings {
			fmt.Fprintf(out, "    %s\n", p.Title)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	formatRuns(out, runs)
	return nil
}

func formatRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-20s  %7s  %5s\n", "Run", "Started", "Search", "Matched", "Total")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-16s  %-20s  %7d  %5d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), truncate(r.SearchText, 20), r.Matched, r.Total)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

// truncate shortens s to at most max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
