package sqlpackage

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

// Runner starts the host process and waits for it.
//
// Stdin, Stdout and Stderr are connected to the child. When they are
// *os.File values (the CLI passes its own standard streams) the child
// inherits the descriptors directly.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes host with args and returns the child's exit code.
//
// A non-nil error means the child could not be started or waited for; it is
// a model.CLIError with ExitToolNotFound. A child terminated by a signal is
// reported as 128+signal, the way a POSIX shell does.
func (r *Runner) Run(ctx context.Context, host string, args []string) (int, error) {
	// #nosec G204 -- args are forwarded as a vector, no shell is involved.
	cmd := exec.CommandContext(ctx, host, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return int(model.ExitToolNotFound),
			model.WrapCLIError(model.ExitToolNotFound, "failed to launch sqlpackage", err)
	}

	err := cmd.Wait()
	if err == nil {
		return int(model.ExitSuccess), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// Wait failed on I/O copying rather than on the child's status.
		return int(model.ExitToolNotFound),
			model.WrapCLIError(model.ExitToolNotFound, "failed to run sqlpackage", err)
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}
