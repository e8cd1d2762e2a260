// Package logbridge forwards log events into a test report. Each event becomes one text
// attachment named "Log Entry" whose content is the line "[LEVEL] source - message".
//
// The Bridge itself knows nothing about any particular logging library; the adapters in this
// package (a slog.Handler, a zerolog.Hook, ldlog base loggers, and a framework.Logger) turn
// the records of a logging pipeline into LogEvent values and pass them to Bridge.Handle.
//
// A Bridge is always bound to an explicit report.Sink, normally the *report.TestCase of the
// running test; there is no global "current test".
package logbridge
