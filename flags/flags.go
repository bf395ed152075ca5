package flags

import (
	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "NPU_HARNESS"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	ProjectRoot = &cli.StringFlag{
		Name:    "project-root",
		Value:   ".",
		EnvVars: prefixEnvVars("PROJECT_ROOT"),
		Usage:   "Project root directory commands are resolved against",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Path to a YAML configuration file overlaying the defaults",
	}
	UnitTests = &cli.BoolFlag{
		Name:    "unit-tests",
		Value:   true,
		EnvVars: prefixEnvVars("UNIT_TESTS"),
		Usage:   "Run the unit test suite",
	}
	IntegrationTests = &cli.BoolFlag{
		Name:    "integration-tests",
		Value:   true,
		EnvVars: prefixEnvVars("INTEGRATION_TESTS"),
		Usage:   "Run the integration test suite",
	}
	SimulationTests = &cli.BoolFlag{
		Name:    "simulation-tests",
		Value:   false,
		EnvVars: prefixEnvVars("SIMULATION_TESTS"),
		Usage:   "Run the hardware simulation test suite",
	}
	PerformanceTests = &cli.BoolFlag{
		Name:    "performance-tests",
		Value:   false,
		EnvVars: prefixEnvVars("PERFORMANCE_TESTS"),
		Usage:   "Run the performance benchmark suite",
	}
	StaticAnalysis = &cli.BoolFlag{
		Name:    "static-analysis",
		Value:   true,
		EnvVars: prefixEnvVars("STATIC_ANALYSIS"),
		Usage:   "Run static analysis checks",
	}
	Parallel = &cli.BoolFlag{
		Name:    "parallel",
		Value:   false,
		EnvVars: prefixEnvVars("PARALLEL"),
		Usage:   "Run suites through a bounded worker pool instead of sequentially",
	}
	Concurrency = &cli.IntFlag{
		Name:    "concurrency",
		Value:   0,
		EnvVars: prefixEnvVars("CONCURRENCY"),
		Usage:   "Worker count for parallel execution (0 = default of 4)",
	}
	HardwareAvailable = &cli.BoolFlag{
		Name:    "hardware-available",
		Value:   false,
		EnvVars: prefixEnvVars("HARDWARE_AVAILABLE"),
		Usage:   "NPU hardware is attached; integration tests drop --software-only",
	}
	EnableCoverage = &cli.BoolFlag{
		Name:    "enable-coverage",
		Value:   false,
		EnvVars: prefixEnvVars("ENABLE_COVERAGE"),
		Usage:   "Add the coverage analysis step to the unit suite",
	}
	FullSim = &cli.BoolFlag{
		Name:    "full-sim",
		Value:   false,
		EnvVars: prefixEnvVars("FULL_SIM"),
		Usage:   "Run the comprehensive simulation tests in addition to the quick ones",
	}
	FullBenchmarks = &cli.BoolFlag{
		Name:    "full-benchmarks",
		Value:   false,
		EnvVars: prefixEnvVars("FULL_BENCHMARKS"),
		Usage:   "Run throughput, latency and scalability benchmarks",
	}
	ReportsDir = &cli.StringFlag{
		Name:    "reports-dir",
		Value:   "test_reports",
		EnvVars: prefixEnvVars("REPORTS_DIR"),
		Usage:   "Directory the report artifacts are written to",
	}
	LogFile = &cli.StringFlag{
		Name:    "log-file",
		Value:   "test_run.log",
		EnvVars: prefixEnvVars("LOG_FILE"),
		Usage:   "Path of the execution log file",
	}
	Verbose = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Value:   false,
		EnvVars: prefixEnvVars("VERBOSE"),
		Usage:   "Enable debug logging",
	}
)

var Flags = []cli.Flag{
	ProjectRoot,
	ConfigFile,
	UnitTests,
	IntegrationTests,
	SimulationTests,
	PerformanceTests,
	StaticAnalysis,
	Parallel,
	Concurrency,
	HardwareAvailable,
	EnableCoverage,
	FullSim,
	FullBenchmarks,
	ReportsDir,
	LogFile,
	Verbose,
}
