package tui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/report"
)

var diffCmd = &cobra.Command{
	Use:   "diff <workout-a> <workout-b>",
	Short: "Compare the frames of two workouts",
	Long: `Compile two workouts with the same settings and print a unified diff of
their frame listings.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	addCompilerFlags(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, a, err := compileArg(cfg, args[0])
	if err != nil {
		return err
	}
	_, b, err := compileArg(cfg, args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	d := report.Diff(args[0], a, args[1], b)
	if d == "" {
		fmt.Fprintln(out, "no differences")
		return nil
	}
	fmt.Fprint(out, d)
	return nil
}
