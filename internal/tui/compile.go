package tui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wod-trainer/wodtimer/internal/report"
)

var compileJSON bool

var compileCmd = &cobra.Command{
	Use:   "compile <workout>",
	Short: "Print the compiled frame list",
	Long: `Compile a workout and print its frames, one per second.

Columns: frame index, stage, workout kind, seconds left in the phase,
seconds left in the workout, phase progress.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	addCompilerFlags(compileCmd)
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "Print the timer as JSON")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, t, err := compileArg(cfg, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if compileJSON {
		data, err := report.JSON(t, isTerminal(out))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprint(out, report.Listing(t))
	return nil
}
