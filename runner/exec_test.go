package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunnerSuccess(t *testing.T) {
	r := NewCommandRunner(t.TempDir(), nil)

	res := r.Run(context.Background(), []string{"sh", "-c", "echo hello"}, "", 10*time.Second)

	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "hello")
	assert.False(t, res.TimedOut)
}

func TestCommandRunnerNonzeroExit(t *testing.T) {
	r := NewCommandRunner(t.TempDir(), nil)

	res := r.Run(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 3"}, "", 10*time.Second)

	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "oops")
	assert.False(t, res.TimedOut)
}

func TestCommandRunnerSpawnFailure(t *testing.T) {
	r := NewCommandRunner(t.TempDir(), nil)

	res := r.Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, "", 10*time.Second)

	assert.Equal(t, SentinelExitCode, res.ExitCode)
	assert.NotEmpty(t, res.Stderr, "spawn failure description must land in stderr")
	assert.False(t, res.TimedOut)
}

func TestCommandRunnerEmptyCommand(t *testing.T) {
	r := NewCommandRunner(t.TempDir(), nil)

	res := r.Run(context.Background(), nil, "", time.Second)

	assert.Equal(t, SentinelExitCode, res.ExitCode)
	assert.Contains(t, res.Stderr, "empty command")
}

func TestCommandRunnerTimeout(t *testing.T) {
	r := NewCommandRunner(t.TempDir(), nil)

	start := time.Now()
	res := r.Run(context.Background(), []string{"sleep", "10"}, "", 200*time.Millisecond)
	elapsed := time.Since(start)

	assert.Equal(t, SentinelExitCode, res.ExitCode)
	assert.True(t, res.TimedOut)
	assert.Contains(t, res.Stderr, "timed out")
	// The process is force-killed; the call must return promptly rather
	// than waiting out the sleep.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestCommandRunnerWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewCommandRunner(dir, nil)

	res := r.Run(context.Background(), []string{"pwd"}, "", 10*time.Second)

	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, dir)
}

func TestCommandRunnerMissingWorkingDirectory(t *testing.T) {
	r := NewCommandRunner("/nonexistent/path/for/harness/tests", nil)

	res := r.Run(context.Background(), []string{"pwd"}, "", 10*time.Second)

	assert.Equal(t, SentinelExitCode, res.ExitCode)
	assert.NotEmpty(t, res.Stderr)
}
