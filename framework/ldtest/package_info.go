// Package ldtest contains a test runner framework that is similar to Go's testing package,
// but is run as regular Go application code rather than Go tests. It also adds richer
// capabilities for configuration, logging, and result reporting: every test scope owns a
// report.TestCase, steps are recorded with T.Step, and log output obtained from T.Logger is
// attached to the report through the logbridge package.
package ldtest
