package runner

import "time"

const (
	// DefaultConcurrency is the worker count for parallel suite execution.
	DefaultConcurrency = 4

	// BuildTimeout bounds every suite's build gate.
	BuildTimeout = 5 * time.Minute

	// Per-step timeouts, suite-dependent. Unit categories are short;
	// integration, simulation and benchmark runs get progressively longer.
	UnitStepTimeout        = 2 * time.Minute
	IntegrationStepTimeout = 10 * time.Minute
	SimulationStepTimeout  = 30 * time.Minute
	BenchmarkStepTimeout   = 15 * time.Minute
	AnalysisStepTimeout    = 5 * time.Minute
)
