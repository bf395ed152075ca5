package runner

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// suiteWork is one unit of work for the pool: a single suite definition.
type suiteWork struct {
	def types.SuiteDefinition
}

// parallelExecutor fans suite definitions out to a fixed number of
// workers. Results arrive on the collection channel in completion order,
// which is explicitly nondeterministic across runs.
type parallelExecutor struct {
	scheduler   *Scheduler
	concurrency int
	log         *slog.Logger
}

func newParallelExecutor(s *Scheduler, concurrency int) *parallelExecutor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &parallelExecutor{
		scheduler:   s,
		concurrency: concurrency,
		log:         s.log.With("component", "parallel-executor"),
	}
}

// executeSuites runs the given definitions through the pool and returns
// the suite results in completion order.
func (pe *parallelExecutor) executeSuites(ctx context.Context, defs []types.SuiteDefinition) []types.SuiteResult {
	if len(defs) == 0 {
		return nil
	}

	pe.log.Info("starting parallel suite execution", "suites", len(defs), "concurrency", pe.concurrency)

	workChan := make(chan suiteWork, len(defs))
	resultChan := make(chan types.SuiteResult, len(defs))

	var wg sync.WaitGroup
	for i := 0; i < pe.concurrency; i++ {
		wg.Add(1)
		go pe.worker(ctx, &wg, workChan, resultChan)
	}

	for _, def := range defs {
		workChan <- suiteWork{def: def}
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// resultChan is the only structure shared between suites; collection
	// here is the synchronization point.
	results := make([]types.SuiteResult, 0, len(defs))
	for res := range resultChan {
		pe.log.Info("suite finished", "suite", res.ID, "status", res.Status())
		results = append(results, res)
	}
	return results
}

func (pe *parallelExecutor) worker(ctx context.Context, wg *sync.WaitGroup, workChan <-chan suiteWork, resultChan chan<- types.SuiteResult) {
	defer wg.Done()
	for {
		select {
		case work, ok := <-workChan:
			if !ok {
				return
			}
			resultChan <- pe.scheduler.runSuite(ctx, work.def)
		case <-ctx.Done():
			return
		}
	}
}
