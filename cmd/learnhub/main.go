// Command learnhub is the terminal client for the learnhub platform.
// All wiring and command logic lives in internal/cli; main only executes
// the root command.
package main

import (
	"os"

	"github.com/sakif/learnhub/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
