package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpga-npu/infra/npu-harness/types"
)

func suiteIDs(defs []types.SuiteDefinition) []string {
	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	return ids
}

func stepNames(def types.SuiteDefinition) []string {
	names := make([]string, 0, len(def.Steps))
	for _, step := range def.Steps {
		names = append(names, step.Name)
	}
	return names
}

func findSuite(t *testing.T, defs []types.SuiteDefinition, id string) types.SuiteDefinition {
	t.Helper()
	for _, def := range defs {
		if def.ID == id {
			return def
		}
	}
	t.Fatalf("suite %s not in catalog", id)
	return types.SuiteDefinition{}
}

func TestNewRegistryRequiresProjectRoot(t *testing.T) {
	_, err := NewRegistry(Config{})
	require.ErrorContains(t, err, "project root is required")
}

func TestRegistryOrderWithEverythingEnabled(t *testing.T) {
	r, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot: types.ConfigSnapshot{
			RunUnitTests:        true,
			RunIntegrationTests: true,
			RunSimulationTests:  true,
			RunPerformanceTests: true,
			RunStaticAnalysis:   true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"unit", "static", "integration", "simulation", "performance"}, suiteIDs(r.Suites()))
}

func TestRegistryGatesSuitesOnFlags(t *testing.T) {
	r, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot: types.ConfigSnapshot{
			RunUnitTests:      true,
			RunStaticAnalysis: true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"unit", "static"}, suiteIDs(r.Suites()))
}

func TestRegistryEmptyWhenNothingEnabled(t *testing.T) {
	r, err := NewRegistry(Config{ProjectRoot: "/proj"})
	require.NoError(t, err)
	assert.Empty(t, r.Suites())
}

func TestUnitSuiteShape(t *testing.T) {
	r, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunUnitTests: true},
	})
	require.NoError(t, err)

	unit := findSuite(t, r.Suites(), "unit")
	require.NotNil(t, unit.Build)
	assert.Equal(t, []string{"make", "clean", "all"}, unit.Build.Command)
	assert.Equal(t, filepath.Join("/proj", "tests", "unit"), unit.WorkDir)
	assert.Equal(t, []string{
		"test_core_functionality",
		"test_memory_management",
		"test_tensor_operations",
		"test_performance_monitoring",
	}, stepNames(unit))
}

func TestUnitSuiteCoverageStep(t *testing.T) {
	r, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunUnitTests: true, EnableCoverage: true},
	})
	require.NoError(t, err)

	unit := findSuite(t, r.Suites(), "unit")
	names := stepNames(unit)
	require.Len(t, names, 5)
	assert.Equal(t, "coverage_analysis", names[4])
	assert.Equal(t, []string{"make", "coverage"}, unit.Steps[4].Command)
}

func TestIntegrationSuiteSoftwareOnlyFlag(t *testing.T) {
	withoutHW, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunIntegrationTests: true},
	})
	require.NoError(t, err)

	integration := findSuite(t, withoutHW.Suites(), "integration")
	require.Len(t, integration.Steps, 2)
	assert.Equal(t, []string{"./integration_test_main", "--e2e-tests", "--software-only"}, integration.Steps[0].Command)
	assert.Equal(t, []string{"./integration_test_main", "--stress-tests", "--software-only"}, integration.Steps[1].Command)

	withHW, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunIntegrationTests: true, HardwareAvailable: true},
	})
	require.NoError(t, err)

	integration = findSuite(t, withHW.Suites(), "integration")
	assert.Equal(t, []string{"./integration_test_main", "--e2e-tests"}, integration.Steps[0].Command)
	assert.Equal(t, []string{"./integration_test_main", "--stress-tests"}, integration.Steps[1].Command)
}

func TestSimulationSuiteProbeAndFullMode(t *testing.T) {
	quick, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunSimulationTests: true},
	})
	require.NoError(t, err)

	sim := findSuite(t, quick.Suites(), "simulation")
	assert.Equal(t, []string{"vivado", "vsim", "vcs"}, sim.ProbeTools)
	assert.Nil(t, sim.Build)
	require.Len(t, sim.Steps, 1)
	assert.Equal(t, []string{"make", "test-quick", "SIM=" + types.ToolPlaceholder}, sim.Steps[0].Command)

	full, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunSimulationTests: true, RunFullSim: true},
	})
	require.NoError(t, err)

	sim = findSuite(t, full.Suites(), "simulation")
	require.Len(t, sim.Steps, 2)
	assert.Equal(t, []string{"make", "test-full", "SIM=" + types.ToolPlaceholder}, sim.Steps[1].Command)
}

func TestPerformanceSuiteFullBenchmarks(t *testing.T) {
	quick, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunPerformanceTests: true},
	})
	require.NoError(t, err)

	perf := findSuite(t, quick.Suites(), "performance")
	require.NotNil(t, perf.Build)
	assert.Equal(t, "benchmark_build", perf.Build.Name)
	assert.Equal(t, []string{"run-quick"}, stepNames(perf))

	full, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunPerformanceTests: true, RunFullBenchmarks: true},
	})
	require.NoError(t, err)

	perf = findSuite(t, full.Suites(), "performance")
	assert.Equal(t, []string{"run-quick", "run-throughput", "run-latency", "run-scalability"}, stepNames(perf))
}

func TestStaticAnalysisSuiteShape(t *testing.T) {
	r, err := NewRegistry(Config{
		ProjectRoot: "/proj",
		Snapshot:    types.ConfigSnapshot{RunStaticAnalysis: true},
	})
	require.NoError(t, err)

	static := findSuite(t, r.Suites(), "static")
	assert.Nil(t, static.Build)
	assert.Equal(t, "/proj", static.WorkDir)
	require.Len(t, static.Steps, 2)

	cppcheck := static.Steps[0]
	assert.Equal(t, "cppcheck_analysis", cppcheck.Name)
	assert.Empty(t, cppcheck.RequireTool, "cppcheck runs unconditionally")
	assert.Contains(t, cppcheck.Command, "--error-exitcode=1")

	clangTidy := static.Steps[1]
	assert.Equal(t, "clang_tidy_analysis", clangTidy.Name)
	assert.Equal(t, "clang-tidy", clangTidy.RequireTool)
}
