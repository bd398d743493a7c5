// Package main is the entry point for the sqlpackage-runner CLI.
//
// The binary is the entrypoint of the SqlPackage container image. It
// delegates all functionality to the internal/cli package and exits with the
// code that package returns, which is SqlPackage's own exit code whenever the
// tool was started.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"os"

	"github.com/shinji-kodama/sqlpackage-runner/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	os.Exit(cli.Execute(rootCmd))
}
