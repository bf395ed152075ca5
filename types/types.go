package types

import (
	"fmt"
	"time"
)

// TestStatus represents the possible states of a test step execution
type TestStatus string

const (
	TestStatusPass  TestStatus = "PASS"
	TestStatusFail  TestStatus = "FAIL"
	TestStatusSkip  TestStatus = "SKIP"
	TestStatusError TestStatus = "ERROR"
)

// Valid reports whether s is one of the four defined statuses.
func (s TestStatus) Valid() bool {
	switch s {
	case TestStatusPass, TestStatusFail, TestStatusSkip, TestStatusError:
		return true
	}
	return false
}

// TestResult captures the outcome of a single test step
type TestResult struct {
	Name     string
	Status   TestStatus
	Duration time.Duration
	Message  string
	Stdout   string // Captured stdout, raw; truncation happens at report time
	Stderr   string
	TimedOut bool
}

// SuiteResult holds the ordered outcomes of one suite run.
// Tests are kept in execution order.
type SuiteResult struct {
	ID           string
	Name         string
	Message      string // optional annotation, e.g. which probed tool ran the suite
	Tests        []TestResult
	Duration     time.Duration
	SetupTime    time.Duration
	TeardownTime time.Duration
}

// Status derives the overall suite status: any ERROR outcome marks the
// suite ERROR, otherwise any FAIL fails it, a suite of only skips is a
// skip, and an empty suite passes.
func (s *SuiteResult) Status() TestStatus {
	sawFail := false
	sawPass := false
	for _, t := range s.Tests {
		switch t.Status {
		case TestStatusError:
			return TestStatusError
		case TestStatusFail:
			sawFail = true
		case TestStatusPass:
			sawPass = true
		}
	}
	if sawFail {
		return TestStatusFail
	}
	if !sawPass && len(s.Tests) > 0 {
		return TestStatusSkip
	}
	return TestStatusPass
}

// Stats returns the per-suite counters.
func (s *SuiteResult) Stats() RunStats {
	var stats RunStats
	for _, t := range s.Tests {
		stats.record(t.Status)
	}
	return stats
}

// RunStats aggregates outcome counters. Failed counts both FAIL and ERROR.
type RunStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

func (r *RunStats) record(status TestStatus) {
	r.Total++
	switch status {
	case TestStatusPass:
		r.Passed++
	case TestStatusFail, TestStatusError:
		r.Failed++
	case TestStatusSkip:
		r.Skipped++
	}
}

// SuccessRate returns passed/total as a percentage, 0 when no tests ran.
func (r RunStats) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total) * 100
}

// ConfigSnapshot echoes the effective configuration into the report so a
// reader can tell which modes a run used.
type ConfigSnapshot struct {
	RunUnitTests        bool `json:"run_unit_tests" yaml:"run_unit_tests"`
	RunIntegrationTests bool `json:"run_integration_tests" yaml:"run_integration_tests"`
	RunSimulationTests  bool `json:"run_simulation_tests" yaml:"run_simulation_tests"`
	RunPerformanceTests bool `json:"run_performance_tests" yaml:"run_performance_tests"`
	RunStaticAnalysis   bool `json:"run_static_analysis" yaml:"run_static_analysis"`
	ParallelExecution   bool `json:"parallel_execution" yaml:"parallel_execution"`
	HardwareAvailable   bool `json:"hardware_available" yaml:"hardware_available"`
	EnableCoverage      bool `json:"enable_coverage" yaml:"enable_coverage"`
	RunFullSim          bool `json:"run_full_sim" yaml:"run_full_sim"`
	RunFullBenchmarks   bool `json:"run_full_benchmarks" yaml:"run_full_benchmarks"`
}

// RunResult is the aggregate snapshot assembled once per run, after all
// suites have finished. It is handed to the reporting layer read-only.
type RunResult struct {
	RunID     string
	Timestamp time.Time
	Duration  time.Duration
	Config    ConfigSnapshot
	Suites    []SuiteResult
	Stats     RunStats
}

// Status derives the overall run status from the collected outcomes.
func (r *RunResult) Status() TestStatus {
	if r.Stats.Failed > 0 {
		return TestStatusFail
	}
	if r.Stats.Total > 0 && r.Stats.Passed == 0 {
		return TestStatusSkip
	}
	return TestStatusPass
}

func (r *RunResult) String() string {
	return fmt.Sprintf("RunResult(id=%s, status=%s, total=%d, passed=%d, failed=%d, skipped=%d, duration=%.2fs)",
		r.RunID, r.Status(), r.Stats.Total, r.Stats.Passed, r.Stats.Failed, r.Stats.Skipped, r.Duration.Seconds())
}
