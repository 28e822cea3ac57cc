package invocation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdrun/internal/execshell"
	"github.com/temirov/cmdrun/internal/invocation"
)

const (
	testCommandPathConstant     = "/usr/local/bin/aws"
	testSubCommandConstant      = "s3"
	testArgumentConstant        = "ls"
	testOutputConstant          = "bucket-one\nbucket-two\n"
	testPanicMessageConstant    = "launcher exploded"
	testCallbackTimeoutConstant = 2 * time.Second
)

type fakeCommandExecutor struct {
	mutex            sync.Mutex
	output           string
	failure          error
	panicValue       any
	release          chan struct{}
	recordedRequests []execshell.InvocationRequest
}

func (executor *fakeCommandExecutor) Execute(request execshell.InvocationRequest) (string, error) {
	executor.mutex.Lock()
	executor.recordedRequests = append(executor.recordedRequests, request)
	executor.mutex.Unlock()

	if executor.release != nil {
		<-executor.release
	}
	if executor.panicValue != nil {
		panic(executor.panicValue)
	}
	if executor.failure != nil {
		return "", executor.failure
	}
	return executor.output, nil
}

func (executor *fakeCommandExecutor) requests() []execshell.InvocationRequest {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	return append([]execshell.InvocationRequest(nil), executor.recordedRequests...)
}

func newTestRequest() execshell.InvocationRequest {
	return execshell.NewInvocationRequest(testCommandPathConstant, testSubCommandConstant, []string{testArgumentConstant})
}

func TestNewInvokerRequiresExecutor(testInstance *testing.T) {
	invoker, creationError := invocation.NewInvoker(nil)
	require.Nil(testInstance, invoker)
	require.ErrorIs(testInstance, creationError, invocation.ErrExecutorNotConfigured)
}

func TestInvokerBlockingAndAsyncYieldIdenticalOutcomes(testInstance *testing.T) {
	request := newTestRequest()

	testCases := []struct {
		name            string
		output          string
		failure         error
		expectedKind    execshell.FailureKind
		expectedOutput  string
		expectedFailure bool
	}{
		{
			name:           "success",
			output:         testOutputConstant,
			expectedKind:   execshell.FailureKindNone,
			expectedOutput: testOutputConstant,
		},
		{
			name:           "empty_output",
			output:         "",
			expectedKind:   execshell.FailureKindNone,
			expectedOutput: "",
		},
		{
			name:            "timeout",
			failure:         execshell.CommandTimeoutError{Request: request, Timeout: time.Second},
			expectedKind:    execshell.FailureKindTimeout,
			expectedFailure: true,
		},
		{
			name:            "non_zero_exit",
			failure:         execshell.CommandFailedError{Request: request, ExitCode: 2, StandardError: "usage\n"},
			expectedKind:    execshell.FailureKindNonZeroExit,
			expectedFailure: true,
		},
		{
			name:            "launch_failure",
			failure:         execshell.CommandExecutionError{Request: request, Cause: errors.New("no such file")},
			expectedKind:    execshell.FailureKindLaunchFailure,
			expectedFailure: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &fakeCommandExecutor{output: testCase.output, failure: testCase.failure}
			invoker, creationError := invocation.NewInvoker(executor)
			require.NoError(testInstance, creationError)

			blockingOutput, blockingError := invoker.RunBlocking(request)
			asyncOutput, asyncError := invoker.RunAsync(request).Wait()

			require.Equal(testInstance, blockingOutput, asyncOutput)
			require.Equal(testInstance, testCase.expectedOutput, asyncOutput)
			require.Equal(testInstance, blockingError, asyncError)
			require.Equal(testInstance, testCase.expectedKind, execshell.ClassifyFailure(asyncError))
			if testCase.expectedFailure {
				require.Error(testInstance, asyncError)
			} else {
				require.NoError(testInstance, asyncError)
			}

			recordedRequests := executor.requests()
			require.Len(testInstance, recordedRequests, 2)
			require.Equal(testInstance, recordedRequests[0], recordedRequests[1])
		})
	}
}

func TestRunAsyncReturnsBeforeCompletion(testInstance *testing.T) {
	executor := &fakeCommandExecutor{output: testOutputConstant, release: make(chan struct{})}
	invoker, creationError := invocation.NewInvoker(executor)
	require.NoError(testInstance, creationError)

	deferred := invoker.RunAsync(newTestRequest())
	require.False(testInstance, deferred.IsDone())

	close(executor.release)
	output, waitError := deferred.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, testOutputConstant, output)
	require.True(testInstance, deferred.IsDone())

	select {
	case <-deferred.Done():
	default:
		testInstance.Fatal("done channel not closed after completion")
	}

	repeatedOutput, repeatedError := deferred.Wait()
	require.NoError(testInstance, repeatedError)
	require.Equal(testInstance, output, repeatedOutput)
}

func TestRunAsyncRecoversExecutorPanic(testInstance *testing.T) {
	executor := &fakeCommandExecutor{panicValue: testPanicMessageConstant}
	invoker, creationError := invocation.NewInvoker(executor)
	require.NoError(testInstance, creationError)

	output, waitError := invoker.RunAsync(newTestRequest()).Wait()
	require.Empty(testInstance, output)
	require.Error(testInstance, waitError)
	require.ErrorContains(testInstance, waitError, testPanicMessageConstant)
	require.Equal(testInstance, execshell.FailureKindUnknown, execshell.ClassifyFailure(waitError))
}

func TestDeferredResultWaitContextStopsWaiting(testInstance *testing.T) {
	executor := &fakeCommandExecutor{output: testOutputConstant, release: make(chan struct{})}
	invoker, creationError := invocation.NewInvoker(executor)
	require.NoError(testInstance, creationError)

	deferred := invoker.RunAsync(newTestRequest())

	waitContext, cancel := context.WithCancel(context.Background())
	cancel()

	output, waitError := deferred.WaitContext(waitContext)
	require.Empty(testInstance, output)
	require.ErrorIs(testInstance, waitError, context.Canceled)
	require.False(testInstance, deferred.IsDone())

	close(executor.release)
	finalOutput, finalError := deferred.WaitContext(context.Background())
	require.NoError(testInstance, finalError)
	require.Equal(testInstance, testOutputConstant, finalOutput)
}

func TestDeferredResultSubscribeDeliversSingleOutcome(testInstance *testing.T) {
	request := newTestRequest()
	failure := execshell.CommandFailedError{Request: request, ExitCode: 1}

	testCases := []struct {
		name           string
		executor       *fakeCommandExecutor
		expectedEvents []string
	}{
		{
			name:           "value_then_completion",
			executor:       &fakeCommandExecutor{output: testOutputConstant},
			expectedEvents: []string{"value:" + testOutputConstant, "completed"},
		},
		{
			name:           "error_only",
			executor:       &fakeCommandExecutor{failure: failure},
			expectedEvents: []string{"error:" + failure.Error()},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			invoker, creationError := invocation.NewInvoker(testCase.executor)
			require.NoError(testInstance, creationError)

			events := make(chan string, 4)
			finished := make(chan struct{})
			deferred := invoker.RunAsync(request)
			deferred.Subscribe(invocation.ResultHandlers{
				OnValue: func(output string) {
					events <- "value:" + output
				},
				OnError: func(failure error) {
					events <- "error:" + failure.Error()
					close(finished)
				},
				OnCompleted: func() {
					events <- "completed"
					close(finished)
				},
			})

			select {
			case <-finished:
			case <-time.After(testCallbackTimeoutConstant):
				testInstance.Fatal("subscription handlers were not invoked")
			}
			close(events)

			var observedEvents []string
			for event := range events {
				observedEvents = append(observedEvents, event)
			}
			require.Equal(testInstance, testCase.expectedEvents, observedEvents)
		})
	}
}
