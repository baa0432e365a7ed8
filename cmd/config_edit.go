package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/brogergvhs/chapterdl/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Open the current or specified config in $VISUAL or $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, err := labelOrCurrent(args)
		if err != nil {
			return err
		}

		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		argv := append(editorCommand(), path)
		editor := exec.Command(argv[0], argv[1:]...)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr

		if err := editor.Run(); err != nil {
			return fmt.Errorf("failed to open editor %s: %w", argv[0], err)
		}

		return nil
	},
}

// editorCommand splits the configured editor so values like "code -w" work.
func editorCommand() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	return []string{"nvim"}
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
