package ldtest

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/logbridge"
	"github.com/stepreport/stepreport/framework/report"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a test scope. It is very similar to Go's testing.T type, except that every scope
// also owns a report (see Report) that records its steps and log output.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	report      *report.TestCase
	failed      bool
	skipped     bool
	skipping    bool
	skipReason  string
	cleanups    []func()
	errors      []error
	helperFns   []string
}

// TestConfiguration contains options for the entire test run.
type TestConfiguration struct {
	// Filter is an optional function for determining which tests to run based on their names.
	Filter Filter

	// TestLogger receives status information about each test.
	TestLogger TestLogger

	// Context is an optional value of any type defined by the application which can be accessed from tests.
	Context interface{}

	// Labels are added to the report of every test in the run.
	Labels []report.Label
}

func (t TestConfiguration) WithContext(context interface{}) TestConfiguration {
	t.Context = context
	return t
}

// Run starts a top-level test scope.
func Run(
	config TestConfiguration,
	action func(*T),
) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{
		config: config,
	}
	t := &T{env: env, report: report.NewTestCase("", "", config.Labels...)}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) TestResult {
	t.runProtected(func() { action(t) })
	errorsBeforeCleanup := len(t.errors)
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		t.runProtected(t.cleanups[i])
	}
	if t.skipped && len(t.errors) > errorsBeforeCleanup {
		// a failed cleanup outranks the skip
		t.skipped = false
	}

	result := TestResult{TestID: t.id}
	switch {
	case t.skipped:
		t.report.Finish(report.StatusSkipped, report.StatusDetails{Message: t.skipReason})
	case t.failed:
		t.report.Finish(report.StatusFailed, statusDetailsForErrors(t.errors))
	default:
		t.report.Finish(report.StatusPassed, report.StatusDetails{})
	}
	result.Errors = t.errors
	result.Report = t.report.Result()

	if t.skipped {
		result.SkipReason = t.skipReason
		t.env.results.Skipped = append(t.env.results.Skipped, result)
		return result
	}
	if t.failed {
		t.env.results.Failures = append(t.env.results.Failures, result)
	}
	t.env.results.Tests = append(t.env.results.Tests, result)
	return result
}

// runProtected calls fn, turning a FailNow or Skip (which panic with the *T) into a normal
// return, and any other panic into a test failure. A test that has already been skipped can
// still fail this way, in a cleanup.
func (t *T) runProtected(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if r == interface{}(t) && t.skipping {
			t.skipping = false
			return
		}
		t.failed = true
		var addError error
		if _, ok := r.(*T); ok {
			if len(t.errors) == 0 {
				addError = errors.New("test failed with no failure message")
			}
		} else {
			addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
		}
		if addError != nil {
			t.errors = append(t.errors, addError)
			t.env.config.TestLogger.TestError(t.id, addError)
		}
	}()
	fn()
}

func statusDetailsForErrors(errs []error) report.StatusDetails {
	var details report.StatusDetails
	messages := make([]string, 0, len(errs))
	var trace []string
	for _, e := range errs {
		messages = append(messages, e.Error())
		var es ErrorWithStacktrace
		if errors.As(e, &es) {
			for _, s := range es.Stacktrace {
				trace = append(trace, s.String())
			}
		}
	}
	details.Message = strings.Join(messages, "\n")
	details.Trace = strings.Join(trace, "\n")
	return details
}

// ID returns the full name of the current test.
func (t *T) ID() TestID {
	return t.id
}

// Run runs a subtest in its own scope.
//
// This is equivalent to Go's testing.T.Run.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)

	t.env.config.TestLogger.TestStarted(id)
	c1 := &T{
		id:     id,
		env:    t.env,
		report: report.NewTestCase(name, id.String(), t.env.config.labelsFor(id)...),
	}
	if t.env.config.Filter != nil && !t.env.config.Filter.Match(id) {
		const reason = "excluded by filter parameters"
		c1.report.Finish(report.StatusSkipped, report.StatusDetails{Message: reason})
		t.env.results.Skipped = append(t.env.results.Skipped,
			TestResult{TestID: id, SkipReason: reason, Report: c1.report.Result()})
		t.env.config.TestLogger.TestSkipped(id, reason)
		return
	}
	t.debugLogger.AddChildLogger(&c1.debugLogger) // see comments on t.DebugLogger()
	result := c1.run(action)
	t.debugLogger.RemoveChildLogger(&c1.debugLogger)
	if c1.skipped {
		t.env.config.TestLogger.TestSkipped(id, c1.skipReason)
	} else {
		t.env.config.TestLogger.TestFinished(id, result, c1.debugLogger.Output())
	}
}

func (c TestConfiguration) labelsFor(id TestID) []report.Label {
	labels := append([]report.Label(nil), c.Labels...)
	if len(id) > 1 {
		labels = append(labels, report.Label{Name: "suite", Value: id[0]})
	}
	return labels
}

// Errorf reports a test failure. It is equivalent to Go's testing.T.Errorf. It does not cause the test
// to terminate, but adds the failure message to the output and marks the test as failed.
//
// You will rarely use this method directly; it is part of this type's implementation of the base
// interfaces testing.T and assert.TestingT, allowing it to be called from assertion helpers.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)

	stacktrace := getStacktrace(false, t.helperFns)
	err = transformError(err, stacktrace)

	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow causes the test to immediately terminate and be marked as failed.
//
// You will rarely use this method directly; it is part of this type's implementation of the base
// interfaces testing.T and assert.TestingT, allowing it to be called from assertion helpers.
func (t *T) FailNow() {
	panic(t)
}

// Skip causes the test to immediately terminate and be marked as skipped.
func (t *T) Skip() {
	t.skipped = true
	t.skipping = true
	panic(t)
}

// SkipWithReason is equivalent to Skip but provides a message.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Step runs action as a named step of this test. The step appears in the test's report, and any
// log output produced through Logger while it runs is attached to it.
//
// The step is recorded as failed if action reports an error or calls FailNow, and as skipped if
// it calls Skip. In both of those cases the test itself stops as usual.
func (t *T) Step(name string, action func()) {
	t.debugLogger.Printf("step: %s", name)
	t.report.StartStep(name)
	errorCount := len(t.errors)
	completed := false
	defer func() {
		status := report.StatusPassed
		switch {
		case !completed && t.skipping:
			status = report.StatusSkipped
		case !completed, len(t.errors) > errorCount:
			status = report.StatusFailed
		}
		t.report.StopStep(status)
	}()
	action()
	completed = true
}

// Report returns the report for this test scope. It can be passed anywhere a report.Sink or
// report.StepRecorder is wanted.
func (t *T) Report() *report.TestCase {
	return t.report
}

// Label adds a label to this test's report.
func (t *T) Label(name, value string) {
	t.report.AddLabel(name, value)
}

// Logger returns a slog.Logger whose output is added to this test's report as log entries, under
// the given source name. The same lines are also written to the test's debug output.
func (t *T) Logger(source string) *slog.Logger {
	return logbridge.NewLogger(logbridge.Sinks{t.report, logbridge.LoggerSink{Logger: &t.debugLogger}}, source)
}

// Debug writes a message to the output for this test scope.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger instance for writing output for this test scope.
//
// The output that is captured for a test will be passed to TestLogger.TestFinished at the end of
// the test. The test runner can choose whether to display this or not based on command-line options.
//
// When a test has subtests (created with t.Run), the logger for a subtest starts out with a copy of
// any output that was already logged for the parent test. During the lifetime of the subtest, any
// further output that is sent to the parent test's logger will go to the child test's logger
// instead.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Defer schedules a cleanup function which is guaranteed to be called when this test scope
// exits for any reason. Unlike a Go defer statement, Defer can be used from within helper
// functions. Cleanups run before the test's report is finished, so steps recorded in a cleanup
// are part of the report.
func (t *T) Defer(cleanupFn func()) {
	t.cleanups = append(t.cleanups, cleanupFn)
}

// Context returns the application-defined context value, if any, that was specified in the
// TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

func (t *T) WithContext(context interface{}) *T {
	copied := *t
	copiedEnv := *t.env
	copiedEnv.config = copiedEnv.config.WithContext(context)
	copied.env = &copiedEnv
	return &copied
}

// Helper marks the function that calls it as a test helper that shouldn't appear in stacktraces.
// Equivalent to Go's testing.T.Helper().
func (t *T) Helper() {
	pc, _, _, ok := runtime.Caller(1) // 0 is Helper() itself, 1 is who called it
	if !ok {
		return
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return
	}
	t.helperFns = append(t.helperFns, f.Name())
}
