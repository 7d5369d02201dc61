package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/railsci/internal/report"
)

const rspecReport = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="rspec" tests="12" skipped="2" failures="1" errors="0" time="3.25" timestamp="2026-10-16T09:00:00+00:00" hostname="ci-01">
  <properties>
    <property name="seed" value="4242"/>
  </properties>
  <testcase classname="spec.models.user_spec" name="User is valid" file="./spec/models/user_spec.rb" time="0.01"></testcase>
  <testcase classname="spec.models.user_spec" name="User rejects blank email" file="./spec/models/user_spec.rb" time="0.02">
    <failure message="expected false" type="RSpec::Expectations::ExpectationNotMetError">expected false</failure>
  </testcase>
</testsuite>
`

const multiSuiteReport = `<testsuites>
  <testsuite name="models" tests="5" failures="1" errors="1" skipped="0" time="1.5"/>
  <testsuite name="requests" tests="7" failures="0" errors="0" skipped="3" time="2"/>
</testsuites>`

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected report.Summary
	}{
		{
			name:     "rspec junit formatter",
			input:    rspecReport,
			expected: report.Summary{Suites: 1, Tests: 12, Failures: 1, Skipped: 2, Time: 3.25},
		},
		{
			name:     "multiple suites are summed",
			input:    multiSuiteReport,
			expected: report.Summary{Suites: 2, Tests: 12, Failures: 1, Errors: 1, Skipped: 3, Time: 3.5},
		},
		{
			name:     "empty testsuites",
			input:    "<testsuites></testsuites>",
			expected: report.Summary{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := report.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "not xml", "<coverage/>", `<testsuite tests="many"/>`} {
		_, err := report.Parse(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	s := report.Summary{Tests: 12, Failures: 1, Errors: 1, Skipped: 2}
	assert.Equal(t, 8, s.Passed())
	assert.Equal(t, "12 tests, 1 failures, 1 errors, 2 skipped", s.String())
	assert.Equal(t, 0, report.Summary{Failures: 3}.Passed())
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.xml")
	require.NoError(t, os.WriteFile(path, []byte(rspecReport), 0o600))

	got, err := report.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Tests)

	_, err = report.ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
