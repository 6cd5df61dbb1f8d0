package tui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wodtimer configuration",
	Long:  `View and manage wodtimer configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with source annotations",
	Long: `Show the fully resolved configuration with annotations indicating
where each value came from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/wodtimer/config.yaml)
  3. Environment variables (WODTIMER_*)
  4. Local config (.wodtimer/config.yaml)
  5. CLI flags (highest precedence)`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

// setMark annotates values that fall back to a default.
func setMark(set bool) string {
	if set {
		return ""
	}
	return " (default)"
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# wodtimer Configuration")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Fprintf(out, "  - %s\n", src)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Directories")
	fmt.Fprintf(out, "  Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		fmt.Fprintf(out, "  Local config:  %s\n", cfg.LocalDir())
	} else {
		fmt.Fprintf(out, "  Local config:  (none detected)\n")
	}
	fmt.Fprintf(out, "  Workouts:      %s\n", cfg.WorkoutsDir)
	fmt.Fprintln(out)

	tc := cfg.Compiler()
	fmt.Fprintln(out, "## Timer Settings")
	fmt.Fprintf(out, "  countdown_seconds: %d%s\n", tc.CountdownSeconds, setMark(cfg.Timer.CountdownSecondsSet))
	fmt.Fprintf(out, "  show_placeholder:  %t%s\n", tc.ShowPlaceholder, setMark(cfg.Timer.ShowPlaceholderSet))
	fmt.Fprintf(out, "  show_go_cue:       %t%s\n", tc.ShowGoCue, setMark(cfg.Timer.ShowGoCueSet))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Display Settings")
	fmt.Fprintf(out, "  refresh_hz: %d\n", cfg.Display.RefreshHz)
	fmt.Fprintf(out, "  bell:       %t\n", cfg.Display.Bell)

	return nil
}
