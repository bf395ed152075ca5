package reporting

import (
	"bytes"
	"html/template"
	"time"

	"github.com/fpga-npu/infra/npu-harness/types"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>NPU Test Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #f0f0f0; padding: 20px; border-radius: 5px; }
        .summary { display: flex; gap: 20px; margin: 20px 0; }
        .metric { background-color: #e9ecef; padding: 15px; border-radius: 5px; text-align: center; }
        .suite { margin: 20px 0; border: 1px solid #ddd; border-radius: 5px; }
        .suite-header { background-color: #f8f9fa; padding: 15px; font-weight: bold; }
        .test { padding: 10px; border-bottom: 1px solid #eee; }
        .test:last-child { border-bottom: none; }
        .status-PASS { color: #28a745; }
        .status-FAIL { color: #dc3545; }
        .status-SKIP { color: #6c757d; }
        .status-ERROR { color: #fd7e14; }
        .output { background-color: #f8f9fa; padding: 10px; margin: 10px 0; font-family: monospace; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="header">
        <h1>NPU Test Report</h1>
        <p>Generated: {{.Timestamp}}</p>
        <p>Duration: {{.Duration}} seconds</p>
    </div>

    <div class="summary">
        <div class="metric">
            <h3>{{.Summary.Total}}</h3>
            <p>Total Tests</p>
        </div>
        <div class="metric">
            <h3 class="status-PASS">{{.Summary.Passed}}</h3>
            <p>Passed</p>
        </div>
        <div class="metric">
            <h3 class="status-FAIL">{{.Summary.Failed}}</h3>
            <p>Failed</p>
        </div>
        <div class="metric">
            <h3 class="status-SKIP">{{.Summary.Skipped}}</h3>
            <p>Skipped</p>
        </div>
        <div class="metric">
            <h3>{{.SuccessRate}}%</h3>
            <p>Success Rate</p>
        </div>
    </div>
{{range .Suites}}
    <div class="suite">
        <div class="suite-header">{{.Name}} ({{.Duration}}s)</div>
{{range .Tests}}
        <div class="test">
            <strong class="status-{{.Status}}">[{{.Status}}]</strong>
            {{.Name}} ({{.Duration}}s)
            <br>
            <em>{{.Message}}</em>
{{if .ErrorOutput}}            <div class="output">Error: {{.ErrorOutput}}</div>
{{end}}        </div>
{{end}}    </div>
{{end}}
</body>
</html>
`

type htmlData struct {
	Timestamp   string
	Duration    string
	Summary     types.RunStats
	SuccessRate string
	Suites      []htmlSuite
}

type htmlSuite struct {
	Name     string
	Duration string
	Tests    []htmlTest
}

type htmlTest struct {
	Name        string
	Status      string
	Duration    string
	Message     string
	ErrorOutput string
}

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

// FormatHTML renders the human-readable report.
func FormatHTML(result *types.RunResult) ([]byte, error) {
	data := htmlData{
		Timestamp:   result.Timestamp.Format(time.RFC3339),
		Duration:    FormatSeconds(result.Duration),
		Summary:     result.Stats,
		SuccessRate: FormatSuccessRate(result.Stats),
		Suites:      make([]htmlSuite, 0, len(result.Suites)),
	}

	for _, suite := range result.Suites {
		s := htmlSuite{
			Name:     suite.Name,
			Duration: FormatSeconds(suite.Duration),
			Tests:    make([]htmlTest, 0, len(suite.Tests)),
		}
		for _, test := range suite.Tests {
			s.Tests = append(s.Tests, htmlTest{
				Name:        test.Name,
				Status:      string(test.Status),
				Duration:    FormatSeconds(test.Duration),
				Message:     test.Message,
				ErrorOutput: SanitizeOutput(test.Stderr),
			})
		}
		data.Suites = append(data.Suites, s)
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
