package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wod-trainer/wodtimer/internal/config"
	"github.com/wod-trainer/wodtimer/internal/debug"
	"github.com/wod-trainer/wodtimer/internal/dirs"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/timing"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// addCompilerFlags registers the flags that override the compiler config.
func addCompilerFlags(cmd *cobra.Command) {
	cmd.Flags().Int("countdown", timer.DefaultCountdownSeconds, "Seconds of get-ready countdown before the first phase")
	cmd.Flags().Bool("no-placeholder", false, "Start on the countdown instead of a blank frame")
	cmd.Flags().Bool("no-go", false, "Skip the GO frame between countdown and workout")
}

// compilerOverride returns the compiler flags the user actually passed.
func compilerOverride(cmd *cobra.Command) timer.Override {
	var o timer.Override
	flags := cmd.Flags()
	if flags.Changed("countdown") {
		n, _ := flags.GetInt("countdown")
		o.CountdownSeconds = timer.Int(n)
	}
	if flags.Changed("no-placeholder") {
		v, _ := flags.GetBool("no-placeholder")
		o.ShowPlaceholder = timer.Bool(!v)
	}
	if flags.Changed("no-go") {
		v, _ := flags.GetBool("no-go")
		o.ShowGoCue = timer.Bool(!v)
	}
	return o
}

// loadConfig loads the layered config and applies cmd's compiler flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyCLIFlags(compilerOverride(cmd))
	timing.Log("config loaded")
	return cfg, nil
}

// loadWorkout resolves arg to a file and decodes it. Unnamed workouts take
// the file's base name.
func loadWorkout(arg, workoutsDir string) (workout.Workout, error) {
	path := dirs.ResolveWorkout(arg, workoutsDir)
	if path == "" {
		return workout.Workout{}, fmt.Errorf("workout %q not found (looked in %s)", arg, workoutsDir)
	}

	w, err := workout.Load(path)
	if err != nil {
		return workout.Workout{}, fmt.Errorf("%s: %w", path, err)
	}
	if w.Name == "" {
		w.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	debug.Logf("loaded workout %q from %s: %s, %d phases", w.Name, path, w.Kind, len(w.Phases))
	timing.Log("workout loaded")
	return w, nil
}

// compileArg loads and compiles the workout named by arg.
func compileArg(cfg *config.Config, arg string) (workout.Workout, timer.Timer, error) {
	w, err := loadWorkout(arg, cfg.WorkoutsDir)
	if err != nil {
		return workout.Workout{}, timer.Timer{}, err
	}
	t, err := timer.Compile(w, cfg.Override())
	if err != nil {
		return workout.Workout{}, timer.Timer{}, err
	}
	timing.Log("workout compiled")
	return w, t, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns w's terminal width, or 80 when it is not a terminal.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
