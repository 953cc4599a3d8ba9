// Package main is the entry point for the porte-calc CLI.
package main

import (
	"os"

	"porte-calc/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
