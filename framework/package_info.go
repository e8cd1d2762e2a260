// Package framework contains the low-level pieces shared by the test runner and the reporting
// components. The base package holds the Logger abstraction and the per-test output capture;
// other components are in the subpackages:
//
//   - ldtest: the test runner, test scopes and test loggers (console, JUnit, Allure).
//   - report: the explicit report context for a running test (steps, attachments, status).
//   - logbridge: adapters that turn log events from a logging pipeline into report attachments.
//   - allure: writes finished test reports in the Allure 2 results format.
//   - resultserver: serves finished reports over HTTP.
//
// The general model is:
//
// 1. Test code runs inside an ldtest scope, which owns a report.TestCase for that test.
//
// 2. Anything the test logs through a logger obtained from the scope is forwarded by the
// bridge into that report as a text attachment, inside whatever step is currently open.
//
// 3. When the test finishes, the frozen report is handed to the test loggers, which decide
// how to present or persist it.
package framework
