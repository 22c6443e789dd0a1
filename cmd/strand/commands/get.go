package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/display"
	"github.com/calder-labs/strand/store"
)

// GetCmd fetches a stored string
var GetCmd = &cobra.Command{
	Use:   "get <value>",
	Short: "Fetch a stored string by value or fingerprint",
	Long: `Fetch a stored string and its computed properties.

By default the argument is treated as the raw string content. With --id the
argument is treated as a fingerprint instead.

Examples:
  strand get "racecar"
  strand get --id 87c1fb5f...`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var getByID bool

func init() {
	GetCmd.Flags().BoolVar(&getByID, "id", false, "Treat the argument as a fingerprint")
}

func runGet(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()

	var record store.Record
	if getByID {
		record, err = svc.GetByID(ctx, args[0])
	} else {
		record, err = svc.GetByValue(ctx, args[0])
	}
	if err != nil {
		display.RenderError(err)
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(record)
	}

	display.RenderRecord(record)
	return nil
}
