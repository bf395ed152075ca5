// Package harness orchestrates NPU test suite runs: it selects suites
// from configuration, schedules them sequentially or through a worker
// pool, aggregates the outcomes, and hands the snapshot to reporting.
package harness

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/fpga-npu/infra/npu-harness/flags"
	"github.com/fpga-npu/infra/npu-harness/types"
)

// Config holds the application configuration.
type Config struct {
	ProjectRoot string
	ReportsDir  string
	LogFile     string
	Verbose     bool
	Concurrency int // Worker count in parallel mode (0 = default)
	Snapshot    types.ConfigSnapshot
	Log         *slog.Logger
}

// fileConfig mirrors the flat configuration mapping; pointer fields let a
// file overlay the defaults field-by-field, leaving absent keys alone.
type fileConfig struct {
	RunUnitTests        *bool `yaml:"run_unit_tests"`
	RunIntegrationTests *bool `yaml:"run_integration_tests"`
	RunSimulationTests  *bool `yaml:"run_simulation_tests"`
	RunPerformanceTests *bool `yaml:"run_performance_tests"`
	RunStaticAnalysis   *bool `yaml:"run_static_analysis"`
	ParallelExecution   *bool `yaml:"parallel_execution"`
	HardwareAvailable   *bool `yaml:"hardware_available"`
	EnableCoverage      *bool `yaml:"enable_coverage"`
	RunFullSim          *bool `yaml:"run_full_sim"`
	RunFullBenchmarks   *bool `yaml:"run_full_benchmarks"`
}

// NewConfig creates a new Config from the cli context, applying the
// optional configuration file overlay on top of the flag values.
func NewConfig(ctx *cli.Context, log *slog.Logger) (*Config, error) {
	root, err := filepath.Abs(ctx.String(flags.ProjectRoot.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	snapshot := types.ConfigSnapshot{
		RunUnitTests:        ctx.Bool(flags.UnitTests.Name),
		RunIntegrationTests: ctx.Bool(flags.IntegrationTests.Name),
		RunSimulationTests:  ctx.Bool(flags.SimulationTests.Name),
		RunPerformanceTests: ctx.Bool(flags.PerformanceTests.Name),
		RunStaticAnalysis:   ctx.Bool(flags.StaticAnalysis.Name),
		ParallelExecution:   ctx.Bool(flags.Parallel.Name),
		HardwareAvailable:   ctx.Bool(flags.HardwareAvailable.Name),
		EnableCoverage:      ctx.Bool(flags.EnableCoverage.Name),
		RunFullSim:          ctx.Bool(flags.FullSim.Name),
		RunFullBenchmarks:   ctx.Bool(flags.FullBenchmarks.Name),
	}

	if cfgPath := ctx.String(flags.ConfigFile.Name); cfgPath != "" {
		if err := overlayConfigFile(&snapshot, cfgPath); err != nil {
			return nil, err
		}
	}

	reportsDir := ctx.String(flags.ReportsDir.Name)
	if !filepath.IsAbs(reportsDir) {
		reportsDir = filepath.Join(root, reportsDir)
	}
	logFile := ctx.String(flags.LogFile.Name)
	if !filepath.IsAbs(logFile) {
		logFile = filepath.Join(root, logFile)
	}

	return &Config{
		ProjectRoot: root,
		ReportsDir:  reportsDir,
		LogFile:     logFile,
		Verbose:     ctx.Bool(flags.Verbose.Name),
		Concurrency: ctx.Int(flags.Concurrency.Name),
		Snapshot:    snapshot,
		Log:         log,
	}, nil
}

// overlayConfigFile applies a YAML configuration file on top of snapshot.
func overlayConfigFile(snapshot *types.ConfigSnapshot, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&snapshot.RunUnitTests, fc.RunUnitTests)
	apply(&snapshot.RunIntegrationTests, fc.RunIntegrationTests)
	apply(&snapshot.RunSimulationTests, fc.RunSimulationTests)
	apply(&snapshot.RunPerformanceTests, fc.RunPerformanceTests)
	apply(&snapshot.RunStaticAnalysis, fc.RunStaticAnalysis)
	apply(&snapshot.ParallelExecution, fc.ParallelExecution)
	apply(&snapshot.HardwareAvailable, fc.HardwareAvailable)
	apply(&snapshot.EnableCoverage, fc.EnableCoverage)
	apply(&snapshot.RunFullSim, fc.RunFullSim)
	apply(&snapshot.RunFullBenchmarks, fc.RunFullBenchmarks)
	return nil
}
