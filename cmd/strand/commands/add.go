package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/display"
	"github.com/calder-labs/strand/errors"
)

// AddCmd analyzes and stores a string
var AddCmd = &cobra.Command{
	Use:   "add <value>",
	Short: "Analyze and store a string",
	Long: `Analyze a string and store it under its content fingerprint.

Storing the same value twice is rejected; the existing record is shown
instead.

Examples:
  strand add "racecar"
  strand add "hello world"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := svc.Create(context.Background(), args[0])
	if err != nil {
		if errors.IsDuplicateError(err) {
			pterm.Warning.Println("Already stored")
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(record)
			}
			display.RenderRecord(record)
			return nil
		}
		display.RenderError(err)
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(record)
	}

	pterm.Success.Println("Stored")
	display.RenderRecord(record)
	return nil
}
