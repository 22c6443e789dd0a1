package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/cmd/strand/commands"
	"github.com/calder-labs/strand/logger"
)

var rootCmd = &cobra.Command{
	Use:   "strand",
	Short: "strand - Content-addressed string analysis store",
	Long: `strand - Store strings with their computed properties, find them again
by structured filters or plain-English phrases.

Every stored string is analyzed once (length, palindrome check, unique
characters, word count, character frequency) and addressed by the SHA-256
fingerprint of its content.

Available commands:
  add     - Analyze and store a string
  get     - Fetch a stored string by value or fingerprint
  rm      - Delete a stored string by value
  ls      - List stored strings, filtered by flags or a phrase
  analyze - Analyze a string without storing it
  serve   - Start the HTTP API and event feed
  config  - Manage strand configuration
  version - Show version information

Examples:
  strand add "racecar"
  strand ls --palindrome
  strand ls longer than 5 containing the letter e
  strand serve -v`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.InitializeWithLevel(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	rootCmd.AddCommand(commands.AddCmd)
	rootCmd.AddCommand(commands.GetCmd)
	rootCmd.AddCommand(commands.RmCmd)
	rootCmd.AddCommand(commands.LsCmd)
	rootCmd.AddCommand(commands.AnalyzeCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
