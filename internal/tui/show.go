package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/debug"
	"github.com/wod-trainer/wodtimer/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <workout>",
	Short: "Summarize a workout",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	addCompilerFlags(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, t, err := compileArg(cfg, args[0])
	if err != nil {
		return err
	}

	md := report.Markdown(w, t)
	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		fmt.Fprint(out, md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(termWidth(out)-6, 40)),
	)
	if err != nil {
		debug.Logf("show: failed to create glamour renderer: %v", err)
		fmt.Fprint(out, md)
		return nil
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
