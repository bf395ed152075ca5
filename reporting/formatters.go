package reporting

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/acarl005/stripansi"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// MaxCapturedOutput bounds how much captured stdout/stderr a report keeps
// per test, so artifacts stay a reasonable size.
const MaxCapturedOutput = 1000

// SanitizeOutput strips ANSI escape sequences from captured child-process
// output and truncates it to at most MaxCapturedOutput bytes, never
// splitting a multi-byte rune.
func SanitizeOutput(s string) string {
	s = stripansi.Strip(s)
	if len(s) <= MaxCapturedOutput {
		return s
	}
	cut := MaxCapturedOutput
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// FormatSeconds renders a duration as seconds with 2 decimals, the
// precision used in the JSON and HTML reports.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}

// FormatSecondsAttr renders a duration as seconds with 3 decimals, the
// precision JUnit time attributes use.
func FormatSecondsAttr(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// FormatSuccessRate renders a success rate with 1 decimal.
func FormatSuccessRate(stats types.RunStats) string {
	return fmt.Sprintf("%.1f", stats.SuccessRate())
}
