package model

import (
	"fmt"
)

// ExitCode defines the process exit codes of the runner.
// Anything that is not one of these constants is an exit code forwarded
// from SqlPackage itself.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unexpected internal error, such as an
	// unreadable configuration file.
	ExitGeneralError ExitCode = 1

	// ExitResolutionFailed indicates the inputs could not be resolved:
	// no package file, an ambiguous package file, or a missing publish profile.
	ExitResolutionFailed ExitCode = 2

	// ExitToolNotFound indicates SqlPackage is not installed where expected,
	// or the host process could not be started.
	ExitToolNotFound ExitCode = 127
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error if there is one.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ToolExitError reports that SqlPackage ran and exited with a non-zero code.
// The tool has already written its own diagnostics, so the CLI exits with
// Code without printing anything else.
type ToolExitError struct {
	Code ExitCode
}

func (e *ToolExitError) Error() string {
	return fmt.Sprintf("sqlpackage exited with code %d", e.Code)
}

// Plan is a fully resolved SqlPackage invocation.
//
// Args holds the argument vector passed to Host: the tool path, the injected
// defaults, then the caller's arguments in their original order.
type Plan struct {
	// Host is the executable that runs the tool (normally "dotnet").
	Host string `json:"host" yaml:"host"`

	// Args is the argument vector handed to Host, without shell quoting.
	Args []string `json:"args" yaml:"args"`

	// WorkDir is the directory the package file and publish profile live in.
	WorkDir string `json:"workDir" yaml:"workDir"`

	// PackagePath is the absolute path to the resolved .dacpac file.
	PackagePath string `json:"packagePath" yaml:"packagePath"`

	// ToolPath is the sqlpackage.dll found in the tool store.
	ToolPath string `json:"toolPath" yaml:"toolPath"`

	// ProfilePath is the publish profile that was validated, if any.
	ProfilePath string `json:"profilePath,omitempty" yaml:"profilePath,omitempty"`
}

// Command returns the full command line, host first.
func (p *Plan) Command() []string {
	cmd := make([]string, 0, len(p.Args)+1)
	cmd = append(cmd, p.Host)
	return append(cmd, p.Args...)
}
