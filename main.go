// Package main is the entry point for the jiratool CLI.
package main

import (
	"fmt"
	"os"

	"github.com/opsvik/jiratool/cmd"
	"github.com/opsvik/jiratool/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
