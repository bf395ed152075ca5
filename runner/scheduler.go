package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// Scheduler decides how the selected suites run: one at a time in registry
// order, or through a bounded worker pool. There is never parallelism
// within a suite's step sequence.
type Scheduler struct {
	executor    *SuiteExecutor
	log         *slog.Logger
	parallel    bool
	concurrency int
}

// SchedulerConfig configures suite-level scheduling.
type SchedulerConfig struct {
	Executor    *SuiteExecutor
	Log         *slog.Logger
	Parallel    bool
	Concurrency int // 0 means DefaultConcurrency
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("suite executor is required")
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency cannot be negative, got %d", cfg.Concurrency)
	}
	return &Scheduler{
		executor:    cfg.Executor,
		log:         cfg.Log,
		parallel:    cfg.Parallel,
		concurrency: cfg.Concurrency,
	}, nil
}

// Run executes every definition and returns the suite results: registry
// order when sequential, completion order when parallel.
func (s *Scheduler) Run(ctx context.Context, defs []types.SuiteDefinition) []types.SuiteResult {
	if s.parallel {
		return newParallelExecutor(s, s.concurrency).executeSuites(ctx, defs)
	}

	results := make([]types.SuiteResult, 0, len(defs))
	for _, def := range defs {
		res := s.runSuite(ctx, def)
		s.log.Info("suite finished", "suite", res.ID, "status", res.Status())
		results = append(results, res)
	}
	return results
}

// runSuite isolates one suite execution. A panic inside the executor is
// recovered here and surfaced as a single ERROR outcome, so a faulted
// suite still appears in the report and fails the run instead of
// silently vanishing.
func (s *Scheduler) runSuite(ctx context.Context, def types.SuiteDefinition) (result types.SuiteResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("suite executor fault", "suite", def.ID, "panic", r)
			result = types.SuiteResult{
				ID:   def.ID,
				Name: def.Name,
				Tests: []types.TestResult{{
					Name:    def.ID + "_executor_fault",
					Status:  types.TestStatusError,
					Message: fmt.Sprintf("suite executor fault: %v", r),
				}},
			}
		}
	}()
	return s.executor.Execute(ctx, def)
}
