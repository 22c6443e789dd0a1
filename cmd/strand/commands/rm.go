package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/display"
)

// RmCmd deletes a stored string
var RmCmd = &cobra.Command{
	Use:   "rm <value>",
	Short: "Delete a stored string by value",
	Long: `Delete a stored string. The argument is the raw string content; the
record is located by its content fingerprint.

Examples:
  strand rm "racecar"`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := svc.DeleteByValue(context.Background(), args[0])
	if err != nil {
		display.RenderError(err)
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(record)
	}

	pterm.Success.Printf("Deleted %s\n", record.ID[:8])
	return nil
}
