package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/fpga-npu/infra/npu-harness/metrics"
	"github.com/fpga-npu/infra/npu-harness/registry"
	"github.com/fpga-npu/infra/npu-harness/reporting"
	"github.com/fpga-npu/infra/npu-harness/runner"
	"github.com/fpga-npu/infra/npu-harness/types"
)

// Harness runs the configured test suites once and reports.
type Harness struct {
	config    *Config
	registry  *registry.Registry
	scheduler *runner.Scheduler
	reporter  *reporting.Reporter

	result *types.RunResult
}

// New wires the registry, scheduler and reporter from config.
func New(config *Config) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	reg, err := registry.NewRegistry(registry.Config{
		Log:         config.Log,
		ProjectRoot: config.ProjectRoot,
		Snapshot:    config.Snapshot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	executor := runner.NewSuiteExecutor(
		runner.NewCommandRunner(config.ProjectRoot, config.Log),
		config.Log,
	)
	scheduler, err := runner.NewScheduler(runner.SchedulerConfig{
		Executor:    executor,
		Log:         config.Log,
		Parallel:    config.Snapshot.ParallelExecution,
		Concurrency: config.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	reporter, err := reporting.NewReporter(config.ReportsDir, config.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	return &Harness{
		config:    config,
		registry:  reg,
		scheduler: scheduler,
		reporter:  reporter,
	}, nil
}

// Run executes every selected suite, assembles the aggregate snapshot,
// writes the reports and prints the summary table. It returns a
// TestFailureError when any outcome is FAIL or ERROR, a RuntimeError when
// report generation itself fails, and nil otherwise.
func (h *Harness) Run(ctx context.Context) error {
	runID := uuid.New().String()
	start := time.Now()

	defs := h.registry.Suites()
	h.config.Log.Info("starting test run",
		"run_id", runID,
		"suites", len(defs),
		"parallel", h.config.Snapshot.ParallelExecution)

	suites := h.scheduler.Run(ctx, defs)

	result := &types.RunResult{
		RunID:     runID,
		Timestamp: start,
		Duration:  time.Since(start),
		Config:    h.config.Snapshot,
		Suites:    suites,
	}
	for _, suite := range suites {
		for _, test := range suite.Tests {
			result.Stats = addOutcome(result.Stats, test.Status)
		}
		metrics.RecordSuite(runID, suite.ID, suite.Status())
	}
	h.result = result

	paths, err := h.reporter.Write(result)
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to generate reports: %w", err))
	}

	h.printResultsTable()
	fmt.Println(result.String())

	metrics.RecordRun(runID, result.Status(), result.Stats, result.Duration)
	h.config.Log.Info("test run completed",
		"run_id", runID,
		"status", result.Status(),
		"json", paths.JSON,
		"html", paths.HTML,
		"junit", paths.JUnit)

	if result.Stats.Failed > 0 {
		return NewTestFailureError(result.String())
	}
	return nil
}

// Result returns the aggregate snapshot of the last run.
func (h *Harness) Result() *types.RunResult {
	return h.result
}

func addOutcome(stats types.RunStats, status types.TestStatus) types.RunStats {
	stats.Total++
	switch status {
	case types.TestStatusPass:
		stats.Passed++
	case types.TestStatusFail, types.TestStatusError:
		stats.Failed++
	case types.TestStatusSkip:
		stats.Skipped++
	}
	return stats
}

// printResultsTable prints the run results to the console.
func (h *Harness) printResultsTable() {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("NPU Test Results (%s)", formatDuration(h.result.Duration)))

	t.AppendHeader(table.Row{
		"Type", "ID", "Duration", "Tests", "Passed", "Failed", "Skipped", "Status", "Error",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Type", AutoMerge: true},
		{Name: "ID", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Error", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, suite := range h.result.Suites {
		stats := suite.Stats()
		t.AppendRow(table.Row{
			"Suite",
			suite.Name,
			formatDuration(suite.Duration),
			"-",
			stats.Passed,
			stats.Failed,
			stats.Skipped,
			getResultString(suite.Status()),
			"",
		})

		for i, test := range suite.Tests {
			prefix := "├──"
			if i == len(suite.Tests)-1 {
				prefix = "└──"
			}
			t.AppendRow(table.Row{
				"Test",
				fmt.Sprintf("%s %s", prefix, test.Name),
				formatDuration(test.Duration),
				"1",
				boolToInt(test.Status == types.TestStatusPass),
				boolToInt(test.Status == types.TestStatusFail || test.Status == types.TestStatusError),
				boolToInt(test.Status == types.TestStatusSkip),
				getResultString(test.Status),
				firstLine(test.Stderr),
			})
		}
		t.AppendSeparator()
	}

	switch h.result.Status() {
	case types.TestStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.TestStatusSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		formatDuration(h.result.Duration),
		h.result.Stats.Total,
		h.result.Stats.Passed,
		h.result.Stats.Failed,
		h.result.Stats.Skipped,
		getResultString(h.result.Status()),
		"",
	})

	t.Render()
}
