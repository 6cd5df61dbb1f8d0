package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/config"
	"github.com/wod-trainer/wodtimer/internal/report"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

var (
	newKind   string
	newPhases []int
	newLabels []string
	newRounds int
	newForce  bool
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage saved workouts",
}

var workoutNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Save a new workout to the workouts directory",
	Long: `Save a workout as JSON in the workouts directory so it can be run by name.

Phases are given in seconds and repeated --rounds times; labels pair up with
phases in order.

Examples:
  wodtimer workout new tabata --kind TABATA --phase 20,10 --label work --label rest --rounds 8
  wodtimer workout new cindy --kind AMRAP --phase 1200`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkoutNew,
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workouts",
	Args:  cobra.NoArgs,
	RunE:  runWorkoutList,
}

func init() {
	workoutNewCmd.Flags().StringVarP(&newKind, "kind", "k", string(workout.KindForTime), "Workout kind")
	workoutNewCmd.Flags().IntSliceVarP(&newPhases, "phase", "p", nil, "Phase duration in seconds (repeatable)")
	workoutNewCmd.Flags().StringArrayVarP(&newLabels, "label", "l", nil, "Phase label (repeatable)")
	workoutNewCmd.Flags().IntVar(&newRounds, "rounds", 1, "Repeat the phase list this many times")
	workoutNewCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite an existing workout")

	workoutCmd.AddCommand(workoutNewCmd)
	workoutCmd.AddCommand(workoutListCmd)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slug turns a workout name into a file name stem.
func slug(name string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func runWorkoutNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	stem := slug(name)
	if stem == "" {
		return fmt.Errorf("workout name %q has no usable characters", name)
	}

	kind := workout.Kind(strings.ToUpper(newKind))
	if !kind.IsValid() {
		return fmt.Errorf("unknown kind %q (want one of %v)", newKind, workout.Kinds())
	}
	if newRounds < 1 {
		return fmt.Errorf("--rounds must be at least 1")
	}

	var durations []int
	var labels []string
	for range newRounds {
		for i, d := range newPhases {
			durations = append(durations, d)
			label := ""
			if i < len(newLabels) {
				label = newLabels[i]
			}
			labels = append(labels, label)
		}
	}

	doc, err := report.NewWorkoutJSON(name, kind, durations, labels)
	if err != nil {
		return err
	}
	// Round-trip through the decoder so only loadable workouts are saved.
	w, err := workout.ParseJSON(doc)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := os.MkdirAll(cfg.WorkoutsDir, 0o700); err != nil {
		return fmt.Errorf("create workouts dir: %w", err)
	}

	path := filepath.Join(cfg.WorkoutsDir, stem+".json")
	if _, err := os.Stat(path); err == nil && !newForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return fmt.Errorf("write workout: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s, %s) to %s\n",
		name, w.Kind, timer.FormatTime(w.TotalSeconds()), path)
	return nil
}

func runWorkoutList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	entries, err := os.ReadDir(cfg.WorkoutsDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read workouts dir: %w", err)
	}

	out := cmd.OutOrStdout()
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !slices.Contains([]string{".json", ".yaml", ".yml"}, ext) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		fmt.Fprintf(out, "no workouts in %s\n", cfg.WorkoutsDir)
		return nil
	}

	for _, n := range names {
		w, err := workout.Load(filepath.Join(cfg.WorkoutsDir, n))
		stem := strings.TrimSuffix(n, filepath.Ext(n))
		if err != nil {
			fmt.Fprintf(out, "%-20s invalid: %v\n", stem, err)
			continue
		}
		fmt.Fprintf(out, "%-20s %-8s %s\n", stem, w.Kind, timer.FormatTime(w.TotalSeconds()))
	}
	return nil
}
