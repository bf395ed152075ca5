// Package registry builds the ordered suite catalog for a run. Suites are
// plain data (types.SuiteDefinition); which suites and which optional
// steps appear is decided here, once, from the effective configuration.
package registry

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fpga-npu/infra/npu-harness/runner"
	"github.com/fpga-npu/infra/npu-harness/types"
)

// Config contains registry configuration.
type Config struct {
	Log         *slog.Logger
	ProjectRoot string
	Snapshot    types.ConfigSnapshot
}

// Registry holds the suite definitions selected for one run.
type Registry struct {
	suites []types.SuiteDefinition
}

// NewRegistry builds the catalog. Registry order is fixed: unit, static
// analysis, integration, simulation, performance; configuration flags gate
// which of them are present.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root is required")
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	r := &Registry{}
	snap := cfg.Snapshot

	if snap.RunUnitTests {
		r.suites = append(r.suites, unitSuite(cfg.ProjectRoot, snap))
	}
	if snap.RunStaticAnalysis {
		r.suites = append(r.suites, staticAnalysisSuite(cfg.ProjectRoot))
	}
	if snap.RunIntegrationTests {
		r.suites = append(r.suites, integrationSuite(cfg.ProjectRoot, snap))
	}
	if snap.RunSimulationTests {
		r.suites = append(r.suites, simulationSuite(cfg.ProjectRoot, snap))
	}
	if snap.RunPerformanceTests {
		r.suites = append(r.suites, performanceSuite(cfg.ProjectRoot, snap))
	}

	cfg.Log.Debug("registry loaded", "suites", len(r.suites))
	return r, nil
}

// Suites returns the catalog in registry order.
func (r *Registry) Suites() []types.SuiteDefinition {
	return r.suites
}

func unitSuite(root string, snap types.ConfigSnapshot) types.SuiteDefinition {
	def := types.SuiteDefinition{
		ID:      "unit",
		Name:    "Unit Tests",
		WorkDir: filepath.Join(root, "tests", "unit"),
		Build: &types.StepDefinition{
			Name:    "unit_tests_build",
			Command: []string{"make", "clean", "all"},
			Timeout: runner.BuildTimeout,
			Message: "Failed to build unit tests",
		},
	}
	for _, category := range []string{
		"test_core_functionality",
		"test_memory_management",
		"test_tensor_operations",
		"test_performance_monitoring",
	} {
		def.Steps = append(def.Steps, types.StepDefinition{
			Name:    category,
			Command: []string{"make", "test-" + category},
			Timeout: runner.UnitStepTimeout,
			Message: fmt.Sprintf("Unit test category %s", category),
		})
	}
	if snap.EnableCoverage {
		def.Steps = append(def.Steps, types.StepDefinition{
			Name:    "coverage_analysis",
			Command: []string{"make", "coverage"},
			Timeout: runner.BuildTimeout,
			Message: "Coverage analysis",
		})
	}
	return def
}

func integrationSuite(root string, snap types.ConfigSnapshot) types.SuiteDefinition {
	def := types.SuiteDefinition{
		ID:      "integration",
		Name:    "Integration Tests",
		WorkDir: filepath.Join(root, "tests", "integration"),
		Build: &types.StepDefinition{
			Name:    "integration_tests_build",
			Command: []string{"make", "clean", "all"},
			Timeout: runner.BuildTimeout,
			Message: "Failed to build integration tests",
		},
	}
	steps := []struct {
		name, flag, desc string
	}{
		{"e2e_tests", "--e2e-tests", "End-to-end integration tests"},
		{"stress_tests", "--stress-tests", "Stress and reliability tests"},
	}
	for _, s := range steps {
		cmd := []string{"./integration_test_main", s.flag}
		if !snap.HardwareAvailable {
			cmd = append(cmd, "--software-only")
		}
		def.Steps = append(def.Steps, types.StepDefinition{
			Name:    s.name,
			Command: cmd,
			Timeout: runner.IntegrationStepTimeout,
			Message: s.desc,
		})
	}
	return def
}

func simulationSuite(root string, snap types.ConfigSnapshot) types.SuiteDefinition {
	def := types.SuiteDefinition{
		ID:         "simulation",
		Name:       "Simulation Tests",
		WorkDir:    filepath.Join(root, "tests", "simulation"),
		ProbeTools: []string{"vivado", "vsim", "vcs"},
		Steps: []types.StepDefinition{{
			Name:    "test-quick",
			Command: []string{"make", "test-quick", "SIM=" + types.ToolPlaceholder},
			Timeout: runner.SimulationStepTimeout,
			Message: "Quick functionality tests",
		}},
	}
	if snap.RunFullSim {
		def.Steps = append(def.Steps, types.StepDefinition{
			Name:    "test-full",
			Command: []string{"make", "test-full", "SIM=" + types.ToolPlaceholder},
			Timeout: runner.SimulationStepTimeout,
			Message: "Comprehensive simulation tests",
		})
	}
	return def
}

func performanceSuite(root string, snap types.ConfigSnapshot) types.SuiteDefinition {
	def := types.SuiteDefinition{
		ID:      "performance",
		Name:    "Performance Tests",
		WorkDir: filepath.Join(root, "tests", "benchmarks"),
		Build: &types.StepDefinition{
			Name:    "benchmark_build",
			Command: []string{"make", "clean", "all"},
			Timeout: runner.BuildTimeout,
			Message: "Failed to build benchmarks",
		},
		Steps: []types.StepDefinition{{
			Name:    "run-quick",
			Command: []string{"make", "run-quick"},
			Timeout: runner.BenchmarkStepTimeout,
			Message: "Quick performance validation",
		}},
	}
	if snap.RunFullBenchmarks {
		for _, b := range []struct{ name, desc string }{
			{"run-throughput", "Throughput benchmarks"},
			{"run-latency", "Latency benchmarks"},
			{"run-scalability", "Scalability benchmarks"},
		} {
			def.Steps = append(def.Steps, types.StepDefinition{
				Name:    b.name,
				Command: []string{"make", b.name},
				Timeout: runner.BenchmarkStepTimeout,
				Message: b.desc,
			})
		}
	}
	return def
}

func staticAnalysisSuite(root string) types.SuiteDefinition {
	return types.SuiteDefinition{
		ID:      "static",
		Name:    "Static Analysis",
		WorkDir: root,
		Steps: []types.StepDefinition{
			{
				Name: "cppcheck_analysis",
				Command: []string{
					"cppcheck",
					"--enable=all",
					"--inconclusive",
					"--error-exitcode=1",
					"--suppress=missingIncludeSystem",
					"software/", "tests/",
				},
				Timeout: runner.AnalysisStepTimeout,
				Message: "Static analysis with cppcheck",
			},
			{
				Name:        "clang_tidy_analysis",
				Command:     []string{"sh", "-c", "find software/ -name '*.c' -exec clang-tidy {} -- \\;"},
				Timeout:     runner.AnalysisStepTimeout,
				Message:     "Static analysis with clang-tidy",
				RequireTool: "clang-tidy",
			},
		},
	}
}
