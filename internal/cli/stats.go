package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	primomcp "github.com/valter-silva-au/primo/internal/mcp"
)

var (
	statsJSON  bool
	statsSince string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task activity from the event log",
	Long: `Display counters derived from the event log: tasks added, completed,
reopened and deleted, tasks added per type, and rejected commands per error
kind.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("statistics not available (event logging may be disabled)")
		}

		sinceTime, err := primomcp.ParseSince(statsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		m, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating statistics: %w", err)
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting statistics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Statistics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-24s %d\n", "Events recorded:", m.EventCount)
		fmt.Fprintf(out, "  %-24s %d\n", "Sessions:", m.Sessions)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks added:", m.TasksAdded)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks completed:", m.TasksCompleted)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks reopened:", m.TasksReopened)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks deleted:", m.TasksDeleted)
		fmt.Fprintf(out, "  %-24s %d\n", "Commands rejected:", m.CommandsFailed)
		fmt.Fprintf(out, "  %-24s %d\n", "Storage failures:", m.StorageFailures)

		writeCounts(cmd, "Tasks by type:", m.TasksByType)
		writeCounts(cmd, "Rejections by kind:", m.FailuresByKind)

		if m.OldestEvent != nil {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Oldest event:", m.OldestEvent.Format(time.RFC3339))
		}
		if m.NewestEvent != nil {
			fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", m.NewestEvent.Format(time.RFC3339))
		}
		return nil
	},
}

// writeCounts prints a titled block of counters sorted by key.
func writeCounts(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n  %s\n", title)
	for _, k := range keys {
		fmt.Fprintf(out, "    %-20s %d\n", k+":", counts[k])
	}
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "Time window (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(statsCmd)
}
