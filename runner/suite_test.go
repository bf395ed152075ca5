package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpga-npu/infra/npu-harness/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExecutor(t *testing.T) *SuiteExecutor {
	t.Helper()
	return NewSuiteExecutor(NewCommandRunner(t.TempDir(), discardLogger()), discardLogger())
}

func TestExecuteRunsStepsInOrder(t *testing.T) {
	e := newTestExecutor(t)

	def := types.SuiteDefinition{
		ID:   "unit",
		Name: "Unit Tests",
		Steps: []types.StepDefinition{
			{Name: "first", Command: []string{"sh", "-c", "echo one"}, Timeout: 10 * time.Second},
			{Name: "second", Command: []string{"sh", "-c", "echo two; exit 1"}, Timeout: 10 * time.Second},
			{Name: "third", Command: []string{"sh", "-c", "echo three"}, Timeout: 10 * time.Second},
		},
	}

	result := e.Execute(context.Background(), def)

	require.Len(t, result.Tests, 3)
	assert.Equal(t, "first", result.Tests[0].Name)
	assert.Equal(t, types.TestStatusPass, result.Tests[0].Status)
	assert.Equal(t, "second", result.Tests[1].Name)
	assert.Equal(t, types.TestStatusFail, result.Tests[1].Status)
	assert.Equal(t, "third", result.Tests[2].Name)
	assert.Equal(t, types.TestStatusPass, result.Tests[2].Status)
	assert.Equal(t, types.TestStatusFail, result.Status())
}

func TestExecuteBuildGateShortCircuits(t *testing.T) {
	e := newTestExecutor(t)

	def := types.SuiteDefinition{
		ID:   "unit",
		Name: "Unit Tests",
		Build: &types.StepDefinition{
			Name:    "unit_tests_build",
			Command: []string{"sh", "-c", "echo broken >&2; exit 2"},
			Message: "Failed to build unit tests",
		},
		Steps: []types.StepDefinition{
			{Name: "should_not_run", Command: []string{"sh", "-c", "echo nope"}, Timeout: 10 * time.Second},
		},
	}

	result := e.Execute(context.Background(), def)

	// A failed build produces exactly one outcome; no step runs.
	require.Len(t, result.Tests, 1)
	assert.Equal(t, "unit_tests_build", result.Tests[0].Name)
	assert.Equal(t, types.TestStatusFail, result.Tests[0].Status)
	assert.Equal(t, "Failed to build unit tests", result.Tests[0].Message)
	assert.Contains(t, result.Tests[0].Stderr, "broken")
	assert.Greater(t, result.SetupTime, time.Duration(0))
	assert.Equal(t, types.TestStatusFail, result.Status())
}

func TestExecuteBuildGatePassesThrough(t *testing.T) {
	e := newTestExecutor(t)

	def := types.SuiteDefinition{
		ID:   "integration",
		Name: "Integration Tests",
		Build: &types.StepDefinition{
			Name:    "integration_tests_build",
			Command: []string{"sh", "-c", "true"},
		},
		Steps: []types.StepDefinition{
			{Name: "e2e", Command: []string{"sh", "-c", "true"}, Timeout: 10 * time.Second},
		},
	}

	result := e.Execute(context.Background(), def)

	require.Len(t, result.Tests, 1)
	assert.Equal(t, "e2e", result.Tests[0].Name)
	assert.Equal(t, types.TestStatusPass, result.Status())
}

func TestExecuteProbeNoToolAvailable(t *testing.T) {
	e := newTestExecutor(t)
	e.lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	def := types.SuiteDefinition{
		ID:         "simulation",
		Name:       "Simulation Tests",
		ProbeTools: []string{"vivado", "vsim", "vcs"},
		Steps: []types.StepDefinition{
			{Name: "rtl_sim_quick", Command: []string{"sh", "-c", "true"}, Timeout: 10 * time.Second},
		},
	}

	result := e.Execute(context.Background(), def)

	require.Len(t, result.Tests, 1)
	assert.Equal(t, "simulation_tools_check", result.Tests[0].Name)
	assert.Equal(t, types.TestStatusSkip, result.Tests[0].Status)
	assert.Equal(t, "no simulation tests tools available (candidates: vivado, vsim, vcs)", result.Tests[0].Message)
	assert.Equal(t, types.TestStatusSkip, result.Status())
}

func TestExecuteProbeSelectsFirstToolInPreferenceOrder(t *testing.T) {
	e := newTestExecutor(t)
	e.lookPath = func(name string) (string, error) {
		if name == "vsim" || name == "vcs" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	def := types.SuiteDefinition{
		ID:         "simulation",
		Name:       "Simulation Tests",
		ProbeTools: []string{"vivado", "vsim", "vcs"},
		Steps: []types.StepDefinition{
			{Name: "rtl_sim_quick", Command: []string{"sh", "-c", "echo SIM={{tool}}"}, Timeout: 10 * time.Second},
		},
	}

	result := e.Execute(context.Background(), def)

	require.Len(t, result.Tests, 1)
	assert.Equal(t, types.TestStatusPass, result.Tests[0].Status)
	// The placeholder resolves to the first available candidate, and the
	// selection is recorded on the suite result.
	assert.Contains(t, result.Tests[0].Stdout, "SIM=vsim")
	assert.Equal(t, "using tool: vsim", result.Message)
}

func TestSelectStepsFiltersOnRequiredTool(t *testing.T) {
	e := newTestExecutor(t)
	e.lookPath = func(name string) (string, error) {
		if name == "cppcheck" {
			return "/usr/bin/cppcheck", nil
		}
		return "", errors.New("not found")
	}

	steps := []types.StepDefinition{
		{Name: "cppcheck_analysis", RequireTool: "cppcheck"},
		{Name: "clang_tidy_analysis", RequireTool: "clang-tidy"},
		{Name: "always"},
	}

	selected := e.selectSteps(steps)

	require.Len(t, selected, 2)
	assert.Equal(t, "cppcheck_analysis", selected[0].Name)
	assert.Equal(t, "always", selected[1].Name)
}

func TestRunStepTimeoutAnnotatesMessage(t *testing.T) {
	e := newTestExecutor(t)

	def := types.SuiteDefinition{ID: "unit", Name: "Unit Tests"}
	step := types.StepDefinition{
		Name:    "slow",
		Command: []string{"sleep", "10"},
		Timeout: 200 * time.Millisecond,
		Message: "Slow step failed",
	}

	outcome := e.runStep(context.Background(), def, step, "")

	assert.Equal(t, types.TestStatusFail, outcome.Status)
	assert.True(t, outcome.TimedOut)
	assert.Contains(t, outcome.Message, "Slow step failed (timed out after")
}

func TestSubstituteTool(t *testing.T) {
	step := types.StepDefinition{
		Name:    "rtl_sim_full",
		Command: []string{"make", "test-full", "SIM={{tool}}"},
	}

	got := substituteTool(step, "vivado")
	assert.Equal(t, []string{"make", "test-full", "SIM=vivado"}, got.Command)

	// Without a probed tool the command is left untouched.
	same := substituteTool(step, "")
	assert.Equal(t, step.Command, same.Command)
}
