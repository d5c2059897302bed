// Package shell runs the informational side-effect commands that every
// dispatcher action fires after its state mutation. The commands are
// fire-and-forget notifications; a failure is reported to the caller but
// never rolls back the mutation that preceded it.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Runner executes a side-effect notification command.
type Runner interface {
	// Echo runs `echo <message>` and returns an error if the command
	// failed or timed out.
	Echo(ctx context.Context, message string) error
}

// ExecRunner executes echo directly, never through a shell, so message content
// is passed as a literal argument and cannot trigger command substitution.
// Every call is bounded by a timeout so a hung process can never block an HTTP
// response indefinitely; a timeout is reported like any other failure.
type ExecRunner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecRunner creates a runner with the given per-command timeout.
func NewExecRunner(timeout time.Duration, logger *slog.Logger) *ExecRunner {
	return &ExecRunner{timeout: timeout, logger: logger}
}

func (r *ExecRunner) Echo(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "echo", message)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("shell echo: %w (output: %s)", err, out)
	}

	r.logger.Debug("side effect executed", "message", message)
	return nil
}
