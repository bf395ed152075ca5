package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fpga-npu/infra/npu-harness/types"
)

const (
	MetricsNamespace = "npu_harness"
)

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of harness errors",
	}, []string{
		"error",
	})

	suiteResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_results_total",
		Help:      "Count of suite runs by result",
	}, []string{
		"run_id",
		"suite",
		"result",
	})

	runResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_results",
		Help:      "Result of test runs",
	}, []string{
		"run_id",
		"result",
	})

	runTestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_total",
		Help:      "Total number of test steps in a run",
	}, []string{
		"run_id",
	})

	runTestsPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_passed",
		Help:      "Number of passed test steps in a run",
	}, []string{
		"run_id",
	})

	runTestsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_failed",
		Help:      "Number of failed test steps in a run",
	}, []string{
		"run_id",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of test runs",
	}, []string{
		"run_id",
	})
)

func RecordError(err string) {
	errorsTotal.WithLabelValues(err).Inc()
}

// RecordSuite records the outcome of a single suite.
func RecordSuite(runID string, suite string, result types.TestStatus) {
	suiteResults.WithLabelValues(runID, suite, string(result)).Inc()
}

// RecordRun records the aggregate outcome of a run.
func RecordRun(runID string, result types.TestStatus, stats types.RunStats, duration time.Duration) {
	runResults.WithLabelValues(runID, string(result)).Set(1)
	runTestsTotal.WithLabelValues(runID).Add(float64(stats.Total))
	runTestsPassed.WithLabelValues(runID).Add(float64(stats.Passed))
	runTestsFailed.WithLabelValues(runID).Add(float64(stats.Failed))
	runDuration.WithLabelValues(runID).Set(duration.Seconds())
}
