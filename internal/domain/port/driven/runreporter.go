package driven

// RunReporter is the host automation environment's view of the run: named
// outputs and failure annotations.
type RunReporter interface {
	// SetOutput publishes a named output value.
	SetOutput(name, value string)
	// Fail marks the run as failed with the given message. It may be called
	// more than once; the last message is the effective one.
	Fail(message string)
}
