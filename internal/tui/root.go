package tui

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information set from main.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "wodtimer",
	Short: "Interval timer for TABATA, EMOM, AMRAP and FOR TIME workouts",
	Long: `wodtimer compiles a workout (a kind plus a list of timed phases) into a
second-by-second timer and runs it in the terminal.

Workouts are JSON or YAML files:

  name: Tabata squats
  kind: TABATA
  phases:
    - {duration: 20, label: work}
    - {duration: 10, label: rest}

Pass a path, or a bare name to look it up in the workouts directory.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(workoutCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
