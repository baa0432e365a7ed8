package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var stdin = bufio.NewReader(os.Stdin)

func ask(question string) string {
	fmt.Print(question)
	resp, _ := stdin.ReadString('\n')
	return strings.TrimSpace(resp)
}

// confirm asks a yes/no question; anything but y/yes means no.
func confirm(question string) bool {
	switch strings.ToLower(ask(question + " [y/N]: ")) {
	case "y", "yes":
		return true
	}
	return false
}

// labelOrCurrent returns args[0] when given, else the active profile label.
func labelOrCurrent(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	return currentLabel()
}
