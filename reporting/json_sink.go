package reporting

import (
	"encoding/json"
	"time"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// jsonReport is the structured dump: full nesting, captured output
// sanitized and truncated, summary block included.
type jsonReport struct {
	RunID         string               `json:"run_id"`
	Timestamp     string               `json:"timestamp"`
	TotalDuration float64              `json:"total_duration"`
	Config        types.ConfigSnapshot `json:"config"`
	TestSuites    []jsonSuite          `json:"test_suites"`
	Summary       jsonSummary          `json:"summary"`
}

type jsonSuite struct {
	Name         string     `json:"name"`
	Message      string     `json:"message,omitempty"`
	Duration     float64    `json:"duration"`
	SetupTime    float64    `json:"setup_time"`
	TeardownTime float64    `json:"teardown_time"`
	Tests        []jsonTest `json:"tests"`
}

type jsonTest struct {
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Duration    float64 `json:"duration"`
	Message     string  `json:"message"`
	Output      string  `json:"output"`
	ErrorOutput string  `json:"error_output"`
}

type jsonSummary struct {
	TotalTests   int     `json:"total_tests"`
	PassedTests  int     `json:"passed_tests"`
	FailedTests  int     `json:"failed_tests"`
	SkippedTests int     `json:"skipped_tests"`
	SuccessRate  float64 `json:"success_rate"`
}

// FormatJSON renders the structured report.
func FormatJSON(result *types.RunResult) ([]byte, error) {
	report := jsonReport{
		RunID:         result.RunID,
		Timestamp:     result.Timestamp.Format(time.RFC3339),
		TotalDuration: result.Duration.Seconds(),
		Config:        result.Config,
		TestSuites:    make([]jsonSuite, 0, len(result.Suites)),
		Summary: jsonSummary{
			TotalTests:   result.Stats.Total,
			PassedTests:  result.Stats.Passed,
			FailedTests:  result.Stats.Failed,
			SkippedTests: result.Stats.Skipped,
			SuccessRate:  result.Stats.SuccessRate(),
		},
	}

	for _, suite := range result.Suites {
		s := jsonSuite{
			Name:         suite.Name,
			Message:      suite.Message,
			Duration:     suite.Duration.Seconds(),
			SetupTime:    suite.SetupTime.Seconds(),
			TeardownTime: suite.TeardownTime.Seconds(),
			Tests:        make([]jsonTest, 0, len(suite.Tests)),
		}
		for _, test := range suite.Tests {
			s.Tests = append(s.Tests, jsonTest{
				Name:        test.Name,
				Status:      string(test.Status),
				Duration:    test.Duration.Seconds(),
				Message:     test.Message,
				Output:      SanitizeOutput(test.Stdout),
				ErrorOutput: SanitizeOutput(test.Stderr),
			})
		}
		report.TestSuites = append(report.TestSuites, s)
	}

	return json.MarshalIndent(report, "", "  ")
}
