package types

import "time"

// StepDefinition describes one unit of work within a suite, backed by a
// single external command invocation.
type StepDefinition struct {
	Name    string
	Command []string
	Timeout time.Duration
	Message string // Human description attached to the outcome

	// RequireTool, when set, drops the step from the sequence unless the
	// named executable is present on PATH. Checked once before the step
	// sequence begins, never mid-run.
	RequireTool string
}

// SuiteDefinition describes a suite as data: an optional build gate, an
// optional tool probe, and an ordered step sequence. Step selection is
// decided once when the catalog is built, never adaptively.
type SuiteDefinition struct {
	ID      string // Stable identifier, e.g. "unit"
	Name    string // Display name, e.g. "Unit Tests"
	WorkDir string // Working directory for every command in the suite

	// Build, when non-nil, gates the suite: a nonzero exit produces a
	// single FAIL outcome and no steps run.
	Build *StepDefinition

	// ProbeTools is an ordered candidate list; the first executable found
	// on PATH is selected and substituted for ToolPlaceholder in step
	// commands. An empty list disables probing. No candidate found yields
	// a single SKIP outcome.
	ProbeTools []string

	Steps []StepDefinition
}

// ToolPlaceholder marks the spot in a step command where the probed tool
// name is substituted.
const ToolPlaceholder = "{{tool}}"
