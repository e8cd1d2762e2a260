// Package internal contains test helpers for ldtest.
package internal

// RunAction calls action. It is only used in unit tests, but has to live in a separate package
// so that its stack frame is not filtered out as ldtest code.
func RunAction(action func()) {
	action()
}
