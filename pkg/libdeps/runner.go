package libdeps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, passing output through.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger hclog.Logger
}

// Run starts the command and waits for it. A non-zero exit yields an *InstallError.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	logger := r.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Info("🚀 Executing command", "path", name)
	logger.Debug("🚀 Full command with args", "args", args)

	if err := cmd.Start(); err != nil {
		return &InstallError{Args: cmd.Args, ExitCode: -1, Err: fmt.Errorf("failed to start process: %w", err)}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Info("⏹️ Process exited", "code", exitErr.ExitCode())
			return &InstallError{Args: cmd.Args, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &InstallError{Args: cmd.Args, ExitCode: -1, Err: fmt.Errorf("process error: %w", err)}
	}

	logger.Debug("✅ Process completed successfully")
	return nil
}
