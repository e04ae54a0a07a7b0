// usage-tray is a system tray monitor for Claude usage limits.
package main

import (
	"fmt"
	"os"

	"github.com/claudeutils/usage-tray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
