package invocation

import (
	"context"
	"sync"

	"github.com/temirov/cmdrun/internal/execshell"
)

// ResultHandlers receives the single outcome of a DeferredResult.
// OnValue is followed by OnCompleted on success; OnError is called alone on failure.
type ResultHandlers struct {
	OnValue     func(output string)
	OnError     func(failure error)
	OnCompleted func()
}

// DeferredResult resolves to the outcome of an asynchronous invocation.
type DeferredResult struct {
	done         chan struct{}
	completeOnce sync.Once
	outcome      execshell.InvocationOutcome
}

func newDeferredResult() *DeferredResult {
	return &DeferredResult{done: make(chan struct{})}
}

// complete records the outcome. Only the first call has any effect.
func (deferred *DeferredResult) complete(outcome execshell.InvocationOutcome) {
	deferred.completeOnce.Do(func() {
		deferred.outcome = outcome
		close(deferred.done)
	})
}

// Done is closed once the outcome is available.
func (deferred *DeferredResult) Done() <-chan struct{} {
	return deferred.done
}

// IsDone reports whether the outcome is available without blocking.
func (deferred *DeferredResult) IsDone() bool {
	select {
	case <-deferred.done:
		return true
	default:
		return false
	}
}

// Outcome blocks until the invocation finishes and returns its outcome.
func (deferred *DeferredResult) Outcome() execshell.InvocationOutcome {
	<-deferred.done
	return deferred.outcome
}

// Wait blocks until the invocation finishes and returns its output or failure.
func (deferred *DeferredResult) Wait() (string, error) {
	return deferred.Outcome().Unpack()
}

// WaitContext waits for the outcome or for the context to end, whichever happens first.
// An ended context only stops the wait; the process keeps running until it exits or times out.
func (deferred *DeferredResult) WaitContext(waitContext context.Context) (string, error) {
	select {
	case <-deferred.done:
		return deferred.outcome.Unpack()
	case <-waitContext.Done():
		return "", waitContext.Err()
	}
}

// Subscribe delivers the outcome to the handlers from a separate goroutine once it is available.
func (deferred *DeferredResult) Subscribe(handlers ResultHandlers) {
	go func() {
		outcome := deferred.Outcome()
		if outcome.Failure != nil {
			if handlers.OnError != nil {
				handlers.OnError(outcome.Failure)
			}
			return
		}
		if handlers.OnValue != nil {
			handlers.OnValue(outcome.Output)
		}
		if handlers.OnCompleted != nil {
			handlers.OnCompleted()
		}
	}()
}
