// Package reporting turns a finished RunResult into the persisted report
// artifacts. Every sink is a pure transform of the aggregate snapshot; the
// only side effect is writing its file.
package reporting

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// timestampLayout names report files so successive runs never collide.
const timestampLayout = "20060102_150405"

// Paths lists the artifacts one Write produced.
type Paths struct {
	JSON  string
	HTML  string
	JUnit string
}

// Reporter coordinates the three report sinks over a shared output
// directory.
type Reporter struct {
	baseDir string
	log     *slog.Logger
}

// NewReporter creates a reporter writing under baseDir.
func NewReporter(baseDir string, log *slog.Logger) (*Reporter, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("report directory is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{baseDir: baseDir, log: log}, nil
}

// Write serializes result into the JSON, HTML and JUnit XML artifacts and
// returns their paths.
func (r *Reporter) Write(result *types.RunResult) (Paths, error) {
	if err := os.MkdirAll(r.baseDir, 0755); err != nil {
		return Paths{}, fmt.Errorf("failed to create report directory %s: %w", r.baseDir, err)
	}

	ts := result.Timestamp.Format(timestampLayout)
	paths := Paths{
		JSON:  filepath.Join(r.baseDir, fmt.Sprintf("test_report_%s.json", ts)),
		HTML:  filepath.Join(r.baseDir, fmt.Sprintf("test_report_%s.html", ts)),
		JUnit: filepath.Join(r.baseDir, fmt.Sprintf("junit_report_%s.xml", ts)),
	}

	jsonOut, err := FormatJSON(result)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to format JSON report: %w", err)
	}
	if err := os.WriteFile(paths.JSON, jsonOut, 0644); err != nil {
		return Paths{}, fmt.Errorf("failed to write JSON report: %w", err)
	}

	htmlOut, err := FormatHTML(result)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to format HTML report: %w", err)
	}
	if err := os.WriteFile(paths.HTML, htmlOut, 0644); err != nil {
		return Paths{}, fmt.Errorf("failed to write HTML report: %w", err)
	}

	junitOut, err := FormatJUnit(result)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to format JUnit report: %w", err)
	}
	if err := os.WriteFile(paths.JUnit, junitOut, 0644); err != nil {
		return Paths{}, fmt.Errorf("failed to write JUnit report: %w", err)
	}

	r.log.Info("reports generated",
		"json", paths.JSON,
		"html", paths.HTML,
		"junit", paths.JUnit)
	return paths, nil
}
