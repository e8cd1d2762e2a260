package ldtest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events         []string
	finishedOutput []framework.CapturedOutput
	endErr         error
	ended          bool
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.events = append(r.events, "start "+id.String()) }
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+err.Error())
}
func (r *recordingTestLogger) TestFinished(id TestID, _ TestResult, out framework.CapturedOutput) {
	r.events = append(r.events, "finish "+id.String())
	r.finishedOutput = append(r.finishedOutput, out)
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skip "+id.String()+": "+reason)
}
func (r *recordingTestLogger) EndLog(Results) error {
	r.ended = true
	return r.endErr
}

func TestTestLoggerEvents(t *testing.T) {
	logger := &recordingTestLogger{}
	_ = Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("a", func(ldt *T) { ldt.Errorf("oops") })
		ldt.Run("b", func(ldt *T) { ldt.SkipWithReason("later") })
	})
	assert.Equal(t, []string{
		"start a",
		"error a: oops",
		"finish a",
		"start b",
		"skip b: later",
	}, logger.events)
}

func TestMultiTestLogger(t *testing.T) {
	l1 := &recordingTestLogger{endErr: errors.New("first")}
	l2 := &recordingTestLogger{endErr: errors.New("second")}
	multi := &MultiTestLogger{Loggers: []TestLogger{l1, l2}}
	results := Run(TestConfiguration{TestLogger: multi}, func(ldt *T) {
		ldt.Run("a", func(ldt *T) {})
	})
	err := multi.EndLog(results)

	assert.Equal(t, l1.events, l2.events)
	assert.True(t, l1.ended)
	assert.True(t, l2.ended)
	require.Error(t, err)
	assert.Equal(t, "first", err.Error())
}

func TestStoreTestLogger(t *testing.T) {
	store := report.NewStore()
	logger := StoreTestLogger{Store: store}
	results := Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("a", func(ldt *T) {})
		ldt.Run("b", func(ldt *T) { ldt.Skip() })
	})
	assert.Equal(t, 1, store.Len())
	require.NoError(t, logger.EndLog(results))
	assert.Equal(t, 2, store.Len())

	all := store.All()
	assert.Equal(t, "a", all[0].FullName)
	assert.Equal(t, "b", all[1].FullName)
	assert.Equal(t, report.StatusSkipped, all[1].Status)
}

func TestPrintResults(t *testing.T) {
	var out, errOut bytes.Buffer
	PrintResults(Results{}, &out, &errOut)
	assert.Contains(t, out.String(), "All tests passed")
	assert.Empty(t, errOut.String())

	out.Reset()
	PrintResults(Results{Failures: []TestResult{{TestID: TestID{"a", "b"}}}}, &out, &errOut)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "FAILED TESTS (1):")
	assert.Contains(t, errOut.String(), "  * a/b")
}
