package ldtest

import (
	"fmt"

	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/allure"
)

// AllureTestLogger writes the report of every test, including skipped ones, to an Allure
// results directory at the end of the run.
type AllureTestLogger struct {
	writer *allure.Writer
}

func NewAllureTestLogger(dir string) (*AllureTestLogger, error) {
	w, err := allure.NewWriter(dir)
	if err != nil {
		return nil, err
	}
	return &AllureTestLogger{writer: w}, nil
}

func (a *AllureTestLogger) TestStarted(TestID)                                        {}
func (a *AllureTestLogger) TestError(TestID, error)                                   {}
func (a *AllureTestLogger) TestFinished(TestID, TestResult, framework.CapturedOutput) {}
func (a *AllureTestLogger) TestSkipped(TestID, string)                                {}

func (a *AllureTestLogger) EndLog(results Results) error {
	reports := results.Reports()
	fmt.Printf("Writing %d Allure results to %s\n", len(reports), a.writer.Dir())
	for _, r := range reports {
		if err := a.writer.Write(r); err != nil {
			return fmt.Errorf("cannot write Allure result for %q: %w", r.FullName, err)
		}
	}
	return nil
}
