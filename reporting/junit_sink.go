package reporting

import (
	"encoding/xml"

	"github.com/fpga-npu/infra/npu-harness/types"
)

// JUnit XML shapes, kept to the subset CI systems agree on: aggregate
// counts on <testsuites>, per-suite counts on <testsuite>, and one
// <testcase> per test with a <failure> or <skipped> child when relevant.
// encoding/xml emits childless cases as <testcase ...></testcase> rather
// than a self-closed tag; the two forms are equivalent to any XML parser.
type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string        `xml:"name,attr"`
	Time    string        `xml:"time,attr"`
	Failure *junitFailure `xml:"failure,omitempty"`
	Skipped *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

// FormatJUnit renders the CI-standard XML report.
func FormatJUnit(result *types.RunResult) ([]byte, error) {
	doc := junitTestSuites{
		Tests:    result.Stats.Total,
		Failures: result.Stats.Failed,
		Skipped:  result.Stats.Skipped,
		Time:     FormatSecondsAttr(result.Duration),
		Suites:   make([]junitTestSuite, 0, len(result.Suites)),
	}

	for _, suite := range result.Suites {
		stats := suite.Stats()
		s := junitTestSuite{
			Name:     suite.Name,
			Tests:    stats.Total,
			Failures: stats.Failed,
			Skipped:  stats.Skipped,
			Time:     FormatSecondsAttr(suite.Duration),
			Cases:    make([]junitTestCase, 0, len(suite.Tests)),
		}
		for _, test := range suite.Tests {
			c := junitTestCase{
				Name: test.Name,
				Time: FormatSecondsAttr(test.Duration),
			}
			switch test.Status {
			case types.TestStatusFail, types.TestStatusError:
				c.Failure = &junitFailure{
					Message: test.Message,
					Content: SanitizeOutput(test.Stderr),
				}
			case types.TestStatusSkip:
				c.Skipped = &junitSkipped{Message: test.Message}
			}
			s.Cases = append(s.Cases, c)
		}
		doc.Suites = append(doc.Suites, s)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
