package cmd

import (
	"fmt"

	"github.com/brogergvhs/chapterdl/internal/config"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>...",
	Short: "Remove one or more configs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		active, _ := config.CurrentLabel()

		for _, label := range args {
			force := forceRemove
			if !force && (label == active || label == config.DefaultLabel) {
				if !confirm(fmt.Sprintf("Config %q is active or the Default. Remove it anyway?", label)) {
					fmt.Printf("Skipped %q\n", label)
					continue
				}
				force = true
			}

			if err := config.RemoveConfig(label, force); err != nil {
				return err
			}
			fmt.Printf("Removed configuration %q\n", label)
		}

		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove without asking, even the active or Default config")
	configCmd.AddCommand(configRemoveCmd)
}
