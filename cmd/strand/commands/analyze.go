package commands

import (
	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/analysis"
	"github.com/calder-labs/strand/display"
)

// AnalyzeCmd analyzes a string without storing it
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze <value>",
	Short: "Analyze a string without storing it",
	Long: `Compute the property set for a string (length, palindrome check,
unique characters, word count, character frequency, fingerprint) without
touching the store.

Examples:
  strand analyze "racecar"
  strand analyze "hello world" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	props := analysis.Analyze(args[0])

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(props)
	}

	display.RenderProperties(props)
	return nil
}
