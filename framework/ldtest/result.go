package ldtest

import (
	"strings"

	"github.com/stepreport/stepreport/framework/report"
)

// Results is the outcome of a whole test run. Tests holds every test that ran, in the order they
// finished (so a parent comes after its subtests); Failures is the subset that failed. Skipped
// tests are only in Skipped.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	SkipReason string
	Report     report.Result
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Reports returns the reports of all tests that ran or were skipped, excluding the top-level
// scope created by Run.
func (r Results) Reports() []report.Result {
	ret := make([]report.Result, 0, len(r.Tests)+len(r.Skipped))
	for _, group := range [][]TestResult{r.Tests, r.Skipped} {
		for _, t := range group {
			if len(t.TestID) != 0 {
				ret = append(ret, t.Report)
			}
		}
	}
	return ret
}

type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}
