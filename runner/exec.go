package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// SentinelExitCode is reported when a command could not be spawned or was
// force-killed on timeout, mirroring the -1 returned by the kernel for a
// signalled process.
const SentinelExitCode = -1

// CommandResult holds the observed outcome of one child process.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// CommandRunner executes external commands with a bounded wait. It never
// returns an error to the caller: spawn failures and timeouts are encoded
// in the CommandResult so the suite layer can classify them as outcomes.
type CommandRunner struct {
	defaultDir string
	log        *slog.Logger
}

// NewCommandRunner creates a runner whose commands default to defaultDir
// when a step does not name its own working directory.
func NewCommandRunner(defaultDir string, log *slog.Logger) *CommandRunner {
	if log == nil {
		log = slog.Default()
	}
	return &CommandRunner{defaultDir: defaultDir, log: log}
}

// Run spawns command rooted at dir and blocks until it exits or timeout
// elapses. On timeout the process is force-killed and the result carries
// SentinelExitCode plus an explanatory stderr message. A timeout of 0
// means no bound beyond ctx.
func (c *CommandRunner) Run(ctx context.Context, command []string, dir string, timeout time.Duration) CommandResult {
	if len(command) == 0 {
		return CommandResult{ExitCode: SentinelExitCode, Stderr: "empty command"}
	}
	if dir == "" {
		dir = c.defaultDir
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug("running command", "command", cmd.String(), "dir", dir, "timeout", timeout)

	err := cmd.Run()

	// Timeout takes precedence: CommandContext kills the process when the
	// deadline passes, so err is a generic "signal: killed" here.
	if ctx.Err() == context.DeadlineExceeded {
		return CommandResult{
			ExitCode: SentinelExitCode,
			Stdout:   stdout.String(),
			Stderr:   fmt.Sprintf("command timed out after %v", timeout),
			TimedOut: true,
		}
	}

	result := CommandResult{
		ExitCode: exitCode(err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	// Spawn failures (missing executable, permission denied) produce no
	// ExitError; surface the failure description through stderr.
	if err != nil && result.Stderr == "" && !isExitError(err) {
		result.Stderr = err.Error()
	}
	return result
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return SentinelExitCode
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
