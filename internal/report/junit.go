// Package report summarizes the JUnit XML that rspec writes during a build.
package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Summary holds the totals of a JUnit report.
type Summary struct {
	Suites   int
	Tests    int
	Failures int
	Errors   int
	Skipped  int
	Time     float64
}

// Passed returns the number of tests that neither failed, errored nor were skipped.
func (s Summary) Passed() int {
	passed := s.Tests - s.Failures - s.Errors - s.Skipped
	if passed < 0 {
		return 0
	}
	return passed
}

// String formats the summary for humans.
func (s Summary) String() string {
	return fmt.Sprintf("%d tests, %d failures, %d errors, %d skipped", s.Tests, s.Failures, s.Errors, s.Skipped)
}

// MarshalZerologObject adds the summary to a log event.
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("suites", s.Suites).
		Int("tests", s.Tests).
		Int("passed", s.Passed()).
		Int("failures", s.Failures).
		Int("errors", s.Errors).
		Int("skipped", s.Skipped).
		Float64("time_s", s.Time)
}

type testSuite struct {
	Tests    int     `xml:"tests,attr"`
	Failures int     `xml:"failures,attr"`
	Errors   int     `xml:"errors,attr"`
	Skipped  int     `xml:"skipped,attr"`
	Time     float64 `xml:"time,attr"`
}

type testSuites struct {
	Suites []testSuite `xml:"testsuite"`
}

// Parse reads a JUnit report whose root is either <testsuite> or <testsuites>.
func Parse(r io.Reader) (Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read report: %w", err)
	}

	var root struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &root); err != nil {
		return Summary{}, fmt.Errorf("failed to parse report: %w", err)
	}

	var suites []testSuite
	switch root.XMLName.Local {
	case "testsuite":
		var suite testSuite
		if err := xml.Unmarshal(data, &suite); err != nil {
			return Summary{}, fmt.Errorf("failed to parse testsuite: %w", err)
		}
		suites = []testSuite{suite}
	case "testsuites":
		var all testSuites
		if err := xml.Unmarshal(data, &all); err != nil {
			return Summary{}, fmt.Errorf("failed to parse testsuites: %w", err)
		}
		suites = all.Suites
	default:
		return Summary{}, fmt.Errorf("unexpected report root element %q", root.XMLName.Local) //nolint:err113 // one-off parse error
	}

	summary := Summary{Suites: len(suites)}
	for _, s := range suites {
		summary.Tests += s.Tests
		summary.Failures += s.Failures
		summary.Errors += s.Errors
		summary.Skipped += s.Skipped
		summary.Time += s.Time
	}
	return summary, nil
}

// ParseFile parses the report at path.
func ParseFile(path string) (Summary, error) {
	f, err := os.Open(path) //#nosec G304 -- report path is derived from the workspace
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}
