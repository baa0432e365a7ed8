package cmd

import (
	"fmt"

	"github.com/brogergvhs/chapterdl/internal/config"

	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename [old_label] <new_label>",
	Short: "Rename a config; with one argument the active config is renamed",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newLabel := args[len(args)-1]

		oldLabel, err := labelOrCurrent(args[:len(args)-1])
		if err != nil {
			return err
		}

		if err := config.RenameConfig(oldLabel, newLabel); err != nil {
			return err
		}
		fmt.Printf("Renamed config %q to %q\n", oldLabel, newLabel)

		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
