package report

// WithStep records a step named name around a call to fn. The step is stopped as passed when fn
// returns normally; if fn panics, the step is stopped as failed and the panic continues.
func WithStep(rec StepRecorder, name string, fn func()) {
	rec.StartStep(name)
	completed := false
	defer func() {
		if completed {
			rec.StopStep(StatusPassed)
		} else {
			rec.StopStep(StatusFailed)
		}
	}()
	fn()
	completed = true
}
