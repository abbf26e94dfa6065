// Package main provides the entry point for the voter directory CLI.
package main

import (
	"os"

	"github.com/khalidmahamud/voter-info-web/cmd/voter_directory/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
