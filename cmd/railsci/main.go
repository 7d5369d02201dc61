// Package main provides the entry point for the railsci CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/railsci/internal/cli"
)

// Set at build time via -ldflags.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
