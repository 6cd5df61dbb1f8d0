package tui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/cli"
	"github.com/wod-trainer/wodtimer/internal/debug"
	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/history"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
)

var (
	runPlain     bool
	runAutostart bool
	runNoHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run <workout>",
	Short: "Run a workout timer",
	Long: `Run a workout timer full-screen.

Keys: space or p starts and pauses, r resets, q quits.

With --plain, or when stdout is not a terminal, the timer starts right away
and prints one line per event instead. Ctrl+C stops it.

Every run is logged to the state dir; see 'wodtimer history'.

Examples:
  wodtimer run tabata.yaml
  wodtimer run cindy --countdown 5
  wodtimer run fran --plain --no-placeholder`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	addCompilerFlags(runCmd)
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "Print events instead of the full-screen timer")
	runCmd.Flags().BoolVar(&runAutostart, "start", false, "Start the full-screen timer without waiting for space")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Don't write a run log")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, t, err := compileArg(cfg, args[0])
	if err != nil {
		return err
	}

	var (
		handler event.Handler
		onExit  func(session.State, timer.Frame)
	)
	if !runNoHistory {
		logger, err := history.NewLogger(history.Config{Workout: w, Timer: t, Compiler: cfg.Compiler()})
		if err != nil {
			// A missing run log never blocks the workout.
			debug.Logf("run: history disabled: %v", err)
		} else {
			defer logger.Close()
			handler = logger.Handle
			onExit = logger.Exit
		}
	}

	out := cmd.OutOrStdout()
	if runPlain || !isTerminal(out) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Run(ctx, w, t, cli.RunOptions{
			Out:     out,
			IsTTY:   isTerminal(out),
			Width:   termWidth(out),
			Bell:    cfg.Display.Bell,
			Refresh: cfg.RefreshInterval(),
			Handler: handler,
			OnExit:  onExit,
		})
	}

	state, last, err := Run(w, t, Options{
		Refresh:   cfg.RefreshInterval(),
		Bell:      cfg.Display.Bell,
		Autostart: runAutostart,
		Handler:   handler,
	})
	if err != nil {
		return err
	}
	if onExit != nil {
		onExit(state, last)
	}
	if state == session.StateCompleted {
		fmt.Fprintf(out, "%s complete\n", w.Name)
	}
	return nil
}
