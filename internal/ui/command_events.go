package ui

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/cmdrun/internal/execshell"
)

const (
	commandStartedMessageTemplateConstant          = "Running %s"
	commandCompletedMessageTemplateConstant        = "Completed %s (%d lines)"
	commandTimedOutMessageTemplateConstant         = "%s timed out after %s and was terminated"
	commandFailedExitCodeMessageTemplateConstant   = "%s failed with exit code %d"
	commandExecutionFailureMessageTemplateConstant = "%s failed: %s"
	standardErrorSuffixTemplateConstant            = ": %s"
	lineTerminatorConstant                         = "\n"
	unknownFailureMessageConstant                  = "unknown error"
)

// CommandEventFormatter builds human-readable messages for command lifecycle events.
type CommandEventFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(request execshell.InvocationRequest) string {
	return fmt.Sprintf(commandStartedMessageTemplateConstant, request.Label())
}

// BuildSuccessMessage formats the message describing a command that exited successfully.
func (formatter CommandEventFormatter) BuildSuccessMessage(request execshell.InvocationRequest, output string) string {
	return fmt.Sprintf(commandCompletedMessageTemplateConstant, request.Label(), strings.Count(output, lineTerminatorConstant))
}

// BuildFailureMessage formats the message describing a timeout, non-zero exit, or launch failure.
func (formatter CommandEventFormatter) BuildFailureMessage(request execshell.InvocationRequest, failure error) string {
	var timeoutError execshell.CommandTimeoutError
	if errors.As(failure, &timeoutError) {
		return fmt.Sprintf(commandTimedOutMessageTemplateConstant, request.Label(), timeoutError.Timeout)
	}

	var failedError execshell.CommandFailedError
	if errors.As(failure, &failedError) {
		baseMessage := fmt.Sprintf(commandFailedExitCodeMessageTemplateConstant, request.Label(), failedError.ExitCode)
		trimmedStandardError := strings.TrimSpace(failedError.StandardError)
		if len(trimmedStandardError) == 0 {
			return baseMessage
		}
		return baseMessage + fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}

	failureMessage := unknownFailureMessageConstant
	var executionError execshell.CommandExecutionError
	switch {
	case errors.As(failure, &executionError) && executionError.Cause != nil:
		failureMessage = executionError.Cause.Error()
	case failure != nil:
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(commandExecutionFailureMessageTemplateConstant, request.Label(), failureMessage)
}

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: CommandEventFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by logging command start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(request execshell.InvocationRequest) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(request))
}

// CommandCompleted implements execshell.CommandEventObserver by logging command completion notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(request execshell.InvocationRequest, output string) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(request, output))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging failures.
// Launch failures log at error level; timeouts and non-zero exits log as warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(request execshell.InvocationRequest, failure error) {
	if eventLogger == nil {
		return
	}
	message := eventLogger.formatter.BuildFailureMessage(request, failure)
	if execshell.ClassifyFailure(failure) == execshell.FailureKindLaunchFailure {
		eventLogger.logger.Error(message)
		return
	}
	eventLogger.logger.Warn(message)
}
