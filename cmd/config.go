package cmd

import (
	"fmt"

	"github.com/brogergvhs/chapterdl/internal/config"

	"github.com/spf13/cobra"
)

var flagConfigPath bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective config or manage config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
		})
		if err != nil {
			return err
		}

		if flagConfigPath {
			fmt.Println(used)
			return nil
		}

		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		cfg.Print()
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigPath, "path", false, "print only where the config was loaded from")
	rootCmd.AddCommand(configCmd)
}
