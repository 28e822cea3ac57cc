package invocation

import (
	"errors"
	"fmt"
	"time"

	"github.com/temirov/cmdrun/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "command executor not configured"
	invocationPanicTemplateConstant      = "invocation of %s panicked: %v"
)

// ErrExecutorNotConfigured indicates that no command executor was supplied.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// CommandExecutor runs a single invocation to completion.
type CommandExecutor interface {
	Execute(request execshell.InvocationRequest) (string, error)
}

// Invoker selects between blocking and deferred execution of invocation requests.
type Invoker struct {
	executor CommandExecutor
}

// NewInvoker constructs an Invoker around the executor.
func NewInvoker(executor CommandExecutor) (*Invoker, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Invoker{executor: executor}, nil
}

// RunBlocking executes the request on the calling goroutine and returns the captured standard output.
func (invoker *Invoker) RunBlocking(request execshell.InvocationRequest) (string, error) {
	return invoker.executor.Execute(request)
}

// RunAsync starts the request on a new goroutine and returns immediately.
func (invoker *Invoker) RunAsync(request execshell.InvocationRequest) *DeferredResult {
	deferred := newDeferredResult()
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				deferred.complete(execshell.NewInvocationOutcome("", fmt.Errorf(invocationPanicTemplateConstant, request.Label(), recovered)))
			}
		}()
		deferred.complete(execshell.NewInvocationOutcome(invoker.executor.Execute(request)))
	}()
	return deferred
}

var defaultInvoker = &Invoker{executor: execshell.NewOSProcessLauncher()}

// Run executes the command synchronously using the operating system launcher.
// A non-positive timeout selects execshell.DefaultTimeout.
func Run(command string, subCommand string, argumentTokens []string, timeout time.Duration) (string, error) {
	return defaultInvoker.RunBlocking(execshell.NewInvocationRequest(command, subCommand, argumentTokens).WithTimeout(timeout))
}

// RunAsync executes the command on a new goroutine using the operating system launcher.
// A non-positive timeout selects execshell.DefaultTimeout.
func RunAsync(command string, subCommand string, argumentTokens []string, timeout time.Duration) *DeferredResult {
	return defaultInvoker.RunAsync(execshell.NewInvocationRequest(command, subCommand, argumentTokens).WithTimeout(timeout))
}
