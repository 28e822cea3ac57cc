package execshell

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	commandTimeoutTemplateConstant         = "%s timed out after %s"
	commandFailedTemplateConstant          = "%s exited with code %d"
	commandFailedDetailTemplateConstant    = "%s exited with code %d: %s"
	commandExecutionFailedTemplateConstant = "%s could not be executed: %v"
	commandTimedOutMessageConstant         = "command timed out"
)

// ErrCommandTimedOut matches every CommandTimeoutError through errors.Is.
var ErrCommandTimedOut = errors.New(commandTimedOutMessageConstant)

// CommandTimeoutError reports a process that was terminated after exceeding its timeout.
// TerminationError records a failure to kill the process after the timeout expired.
type CommandTimeoutError struct {
	Request          InvocationRequest
	Timeout          time.Duration
	TerminationError error
}

// Error describes the timed out invocation.
func (timeoutError CommandTimeoutError) Error() string {
	return fmt.Sprintf(commandTimeoutTemplateConstant, timeoutError.Request.Label(), timeoutError.Timeout)
}

// Is reports whether target is ErrCommandTimedOut.
func (timeoutError CommandTimeoutError) Is(target error) bool {
	return target == ErrCommandTimedOut
}

// Unwrap returns the termination failure, if any.
func (timeoutError CommandTimeoutError) Unwrap() error {
	return timeoutError.TerminationError
}

// CommandFailedError reports a process that exited on its own with a non-zero status.
type CommandFailedError struct {
	Request       InvocationRequest
	ExitCode      int
	StandardError string
}

// Error describes the failed invocation including the captured standard error.
func (failedError CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failedError.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, failedError.Request.Label(), failedError.ExitCode)
	}
	return fmt.Sprintf(commandFailedDetailTemplateConstant, failedError.Request.Label(), failedError.ExitCode, trimmedStandardError)
}

// Detail returns the complete captured standard error.
func (failedError CommandFailedError) Detail() string {
	return failedError.StandardError
}

// CommandExecutionError reports a process that could not be started or supervised.
type CommandExecutionError struct {
	Request InvocationRequest
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, executionError.Request.Label(), executionError.Cause)
}

// Unwrap exposes the operating system failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// FailureKind enumerates the classes of invocation failures.
type FailureKind string

// Supported failure kinds.
const (
	FailureKindNone          FailureKind = "none"
	FailureKindTimeout       FailureKind = "timeout"
	FailureKindNonZeroExit   FailureKind = "non_zero_exit"
	FailureKindLaunchFailure FailureKind = "launch_failure"
	FailureKindUnknown       FailureKind = "unknown"
)

// Retryable reports whether repeating the invocation may produce a different outcome.
func (kind FailureKind) Retryable() bool {
	return kind == FailureKindTimeout
}

// ClassifyFailure maps an invocation error onto its FailureKind.
func ClassifyFailure(failure error) FailureKind {
	if failure == nil {
		return FailureKindNone
	}

	if errors.Is(failure, ErrCommandTimedOut) {
		return FailureKindTimeout
	}

	var failedError CommandFailedError
	if errors.As(failure, &failedError) {
		return FailureKindNonZeroExit
	}

	var executionError CommandExecutionError
	if errors.As(failure, &executionError) {
		return FailureKindLaunchFailure
	}

	return FailureKindUnknown
}
