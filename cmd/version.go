package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/brogergvhs/chapterdl/internal/providers"

	"github.com/spf13/cobra"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the chapterdl version and the built-in providers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chapterdl %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Printf("providers: %s\n", strings.Join(providers.Names(), ", "))
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.AddCommand(versionCmd)
}
