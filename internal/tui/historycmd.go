package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/dirs"
	"github.com/wod-trainer/wodtimer/internal/history"
)

var (
	historyShow   bool
	historyRecent int
)

var historyCmd = &cobra.Command{
	Use:   "history [workout]",
	Short: "List past runs",
	Long: `List past timer runs, newest first, with how each one ended.

With a workout name only matching runs are listed. --show prints the
newest matching run log in full.

Examples:
  wodtimer history
  wodtimer history cindy
  wodtimer history cindy --show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVarP(&historyShow, "show", "s", false, "Print the newest matching run log")
	historyCmd.Flags().IntVar(&historyRecent, "recent", 10, "Number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var filter string
	if len(args) > 0 {
		filter = args[0]
	}

	logsDir := dirs.LogsDir()
	logs, err := history.FindLogs(logsDir, filter)
	if err != nil {
		return fmt.Errorf("find run logs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(logs) == 0 {
		fmt.Fprintf(out, "no runs found in %s\n", logsDir)
		return nil
	}

	if historyShow {
		data, err := os.ReadFile(logs[0].Path)
		if err != nil {
			return fmt.Errorf("read run log: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Recent runs (showing %d of %d):\n", min(historyRecent, len(logs)), len(logs))
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for i, lf := range logs {
		if i >= historyRecent {
			break
		}
		fmt.Fprintf(out, "  %s  %-24s %s\n",
			lf.Timestamp.Format("2006-01-02 15:04:05"),
			lf.Workout,
			history.Result(lf.Path),
		)
	}
	return nil
}
