// Package main is the entry point for the gomdtables CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomdtables/internal/cli"
	"github.com/yaklabco/gomdtables/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, cli.ErrIssuesFound):
			return cli.ExitIssues
		case errors.Is(err, cli.ErrStrictWarnings):
			return cli.ExitWarnings
		default:
			logging.Default().Error("command failed", logging.FieldError, err)
			return cli.ExitInternalError
		}
	}
	return cli.ExitSuccess
}
