// Command tide is a small modal text editor for the terminal.
package main

import (
	"os"

	"github.com/zjrosen/tide/cmd"
)

// Set with -ldflags "-X main.version=..." by release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
