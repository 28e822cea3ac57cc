package execshell

// InvocationOutcome captures the single result produced for an invocation.
type InvocationOutcome struct {
	Output  string
	Failure error
}

// NewInvocationOutcome pairs the launcher results into an outcome.
func NewInvocationOutcome(output string, failure error) InvocationOutcome {
	if failure != nil {
		return InvocationOutcome{Failure: failure}
	}
	return InvocationOutcome{Output: output}
}

// Succeeded reports whether the invocation produced output.
func (outcome InvocationOutcome) Succeeded() bool {
	return outcome.Failure == nil
}

// Kind classifies the outcome failure.
func (outcome InvocationOutcome) Kind() FailureKind {
	return ClassifyFailure(outcome.Failure)
}

// Unpack returns the outcome as a conventional value and error pair.
func (outcome InvocationOutcome) Unpack() (string, error) {
	return outcome.Output, outcome.Failure
}
