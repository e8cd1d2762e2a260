// Package report holds the explicit report context for a running test: its steps, its
// attachments and its final status. Nothing in this package looks up a "current test"
// implicitly; callers pass the *TestCase (or one of the Sink/StepRecorder interfaces it
// implements) to whatever needs to write into it.
package report
