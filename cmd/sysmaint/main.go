// Package main is the entry point for the sysmaint CLI.
package main

import (
	"os"

	"github.com/thoreinstein/sysmaint/cmd/sysmaint/commands"
	"github.com/thoreinstein/sysmaint/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
