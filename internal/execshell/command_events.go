package execshell

// CommandEventObserver receives lifecycle notifications for command invocations.
type CommandEventObserver interface {
	// CommandStarted notifies observers that the process is about to be launched.
	CommandStarted(request InvocationRequest)
	// CommandCompleted notifies observers that the process exited successfully and supplies its output.
	CommandCompleted(request InvocationRequest, output string)
	// CommandExecutionFailed reports timeouts, non-zero exits, and launch failures.
	CommandExecutionFailed(request InvocationRequest, failure error)
}

// noopCommandEventObserver discards all command events.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(InvocationRequest) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(InvocationRequest, string) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(InvocationRequest, error) {}
