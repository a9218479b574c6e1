// Package main is the entry point for the modeltime CLI.
package main

import (
	"os"

	"modeltime/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
