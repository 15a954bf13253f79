// Package runner executes external commands with bounded lifetimes.
// Arguments are always passed as a discrete vector, never through a shell.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// DefaultTimeout bounds quick local operations (status, stage, commit).
// NetworkTimeout bounds operations that talk to a remote (fetch, push).
const (
	DefaultTimeout = 10 * time.Second
	NetworkTimeout = 60 * time.Second
)

// killDelay is how long Wait allows lingering pipe readers after the kill
// signal before forcibly closing them.
const killDelay = 3 * time.Second

// Spec describes one command invocation.
type Spec struct {
	Executable string
	Args       []string
	Dir        string
	Timeout    time.Duration // zero means DefaultTimeout
}

// Runner executes a Spec and reports the captured result.
type Runner interface {
	Run(ctx context.Context, spec Spec) (entities.ProcessResult, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command described by spec. On timeout the process and
// its descendants are killed and the partial output captured so far is
// still returned alongside a *entities.ProcessTimeoutError.
func (it *ExecRunner) Run(ctx context.Context, spec Spec) (entities.ProcessResult, error) {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Executable, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.WaitDelay = killDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// The child gets its own process group so a timeout kill also takes
	// down any helpers it spawned (credential helpers, hooks).
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return entities.ProcessResult{}, &entities.ProcessSpawnError{
			Executable: spec.Executable,
			Err:        err,
		}
	}

	waitErr := cmd.Wait()
	result := entities.ProcessResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		logger.Debugf("Command %s timed out after %s", spec.Executable, timeout)
		return result, &entities.ProcessTimeoutError{
			Executable: spec.Executable,
			Timeout:    timeout.String(),
		}
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil // non-zero exit is data, not an error here
		}
		return result, &entities.ProcessSpawnError{
			Executable: spec.Executable,
			Err:        waitErr,
		}
	}

	result.ExitCode = 0
	return result, nil
}
