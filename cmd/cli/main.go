// Package main is the entry point for the poolcost CLI.
package main

import (
	"os"

	"poolcost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
