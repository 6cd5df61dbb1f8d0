package tui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/config"
	"github.com/wod-trainer/wodtimer/internal/timer"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workout>...",
	Short: "Check workout files",
	Long: `Check that each workout decodes and compiles. The first problem in a file
is reported with its path, e.g. "phases[2].duration must be ≥ 0".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, arg := range args {
		w, t, err := compileArg(cfg, arg)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", arg, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "OK   %s: %s, %d phases, %s\n",
			arg, w.Kind, len(w.ActivePhases()), timer.FormatTime(t.TrainingSeconds()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d workouts invalid", failed, len(args))
	}
	return nil
}
