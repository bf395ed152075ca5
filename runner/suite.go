package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// SuiteExecutor walks a SuiteDefinition: build gate, tool probe, then the
// ordered step sequence. Steps inside a suite always run sequentially.
type SuiteExecutor struct {
	cmd      *CommandRunner
	log      *slog.Logger
	tracer   trace.Tracer
	lookPath func(string) (string, error)
}

// NewSuiteExecutor creates an executor backed by the given command runner.
func NewSuiteExecutor(cmd *CommandRunner, log *slog.Logger) *SuiteExecutor {
	if log == nil {
		log = slog.Default()
	}
	return &SuiteExecutor{
		cmd:      cmd,
		log:      log,
		tracer:   otel.Tracer("npu-harness/runner"),
		lookPath: exec.LookPath,
	}
}

// Execute runs one suite and returns its result. It never returns an
// error; every observable condition is a TestResult. Panics from deeper
// layers are the scheduler's concern.
func (e *SuiteExecutor) Execute(ctx context.Context, def types.SuiteDefinition) types.SuiteResult {
	ctx, span := e.tracer.Start(ctx, fmt.Sprintf("suite %s", def.ID))
	defer span.End()

	e.log.Info("running suite", "suite", def.ID)
	suiteStart := time.Now()
	result := types.SuiteResult{ID: def.ID, Name: def.Name}

	// Build gate: a failed build short-circuits the whole suite.
	if def.Build != nil {
		buildStart := time.Now()
		res := e.runCommand(ctx, def, *def.Build)
		result.SetupTime = time.Since(buildStart)

		if res.ExitCode != 0 {
			e.log.Error("suite build failed", "suite", def.ID, "exitCode", res.ExitCode)
			result.Tests = append(result.Tests, types.TestResult{
				Name:     def.Build.Name,
				Status:   types.TestStatusFail,
				Duration: result.SetupTime,
				Message:  def.Build.Message,
				Stdout:   res.Stdout,
				Stderr:   res.Stderr,
				TimedOut: res.TimedOut,
			})
			result.Duration = time.Since(suiteStart)
			return result
		}
	}

	// Tool probe: absence is a normal, reportable outcome, not a failure.
	tool := ""
	if len(def.ProbeTools) > 0 {
		tool = e.probeTool(def.ProbeTools)
		if tool == "" {
			e.log.Warn("no candidate tool available", "suite", def.ID, "candidates", strings.Join(def.ProbeTools, ","))
			result.Tests = append(result.Tests, types.TestResult{
				Name:    def.ID + "_tools_check",
				Status:  types.TestStatusSkip,
				Message: fmt.Sprintf("no %s tools available (candidates: %s)", strings.ToLower(def.Name), strings.Join(def.ProbeTools, ", ")),
			})
			result.Duration = time.Since(suiteStart)
			return result
		}
		result.Message = fmt.Sprintf("using tool: %s", tool)
		e.log.Info("selected tool", "suite", def.ID, "tool", tool)
	}

	for _, step := range e.selectSteps(def.Steps) {
		result.Tests = append(result.Tests, e.runStep(ctx, def, step, tool))
	}

	result.Duration = time.Since(suiteStart)
	e.log.Info("suite completed", "suite", def.ID, "status", result.Status(), "duration", result.Duration)
	return result
}

// selectSteps applies the static per-step tool requirement. Selection
// happens once, before the sequence begins.
func (e *SuiteExecutor) selectSteps(steps []types.StepDefinition) []types.StepDefinition {
	selected := make([]types.StepDefinition, 0, len(steps))
	for _, step := range steps {
		if step.RequireTool != "" {
			if _, err := e.lookPath(step.RequireTool); err != nil {
				e.log.Debug("skipping step, tool not on PATH", "step", step.Name, "tool", step.RequireTool)
				continue
			}
		}
		selected = append(selected, step)
	}
	return selected
}

func (e *SuiteExecutor) runStep(ctx context.Context, def types.SuiteDefinition, step types.StepDefinition, tool string) types.TestResult {
	ctx, span := e.tracer.Start(ctx, fmt.Sprintf("step %s/%s", def.ID, step.Name))
	defer span.End()

	stepStart := time.Now()
	res := e.runCommand(ctx, def, substituteTool(step, tool))
	duration := time.Since(stepStart)

	outcome := types.TestResult{
		Name:     step.Name,
		Status:   types.TestStatusPass,
		Duration: duration,
		Message:  step.Message,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		TimedOut: res.TimedOut,
	}
	if res.ExitCode != 0 {
		outcome.Status = types.TestStatusFail
		if res.TimedOut {
			outcome.Message = fmt.Sprintf("%s (timed out after %v)", step.Message, step.Timeout)
		}
		e.log.Warn("step failed", "suite", def.ID, "step", step.Name, "exitCode", res.ExitCode, "timedOut", res.TimedOut)
	}
	return outcome
}

func (e *SuiteExecutor) runCommand(ctx context.Context, def types.SuiteDefinition, step types.StepDefinition) CommandResult {
	timeout := step.Timeout
	if timeout == 0 {
		timeout = BuildTimeout
	}
	return e.cmd.Run(ctx, step.Command, def.WorkDir, timeout)
}

func (e *SuiteExecutor) probeTool(candidates []string) string {
	for _, tool := range candidates {
		if _, err := e.lookPath(tool); err == nil {
			return tool
		}
	}
	return ""
}

// substituteTool replaces the {{tool}} placeholder in a step's command
// with the probed tool name.
func substituteTool(step types.StepDefinition, tool string) types.StepDefinition {
	if tool == "" {
		return step
	}
	cmd := make([]string, len(step.Command))
	for i, arg := range step.Command {
		cmd[i] = strings.ReplaceAll(arg, types.ToolPlaceholder, tool)
	}
	step.Command = cmd
	return step
}
