// Package model defines the shared types of the sqlpackage-runner CLI.
//
// Nothing here is persisted. A Plan is built for a single invocation and
// discarded when the process exits. The package also defines the exit codes
// (ExitCode) and the error types (CLIError, ToolExitError) that the cli
// package translates into the process exit status.
package model
