package execshell

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	processLauncherNotConfiguredMessageConstant = "process launcher not configured"
	commandStartedLogMessageConstant            = "executing command"
	commandCompletedLogMessageConstant          = "command completed"
	commandFailedLogMessageConstant             = "command failed"
	logFieldCommandConstant                     = "command"
	logFieldArgumentsConstant                   = "arguments"
	logFieldTimeoutConstant                     = "timeout"
	logFieldElapsedConstant                     = "elapsed"
	logFieldOutputBytesConstant                 = "output_bytes"
	logFieldFailureKindConstant                 = "failure_kind"
	logFieldExitCodeConstant                    = "exit_code"
	logFieldStandardErrorConstant               = "stderr"
	logFieldTerminationErrorConstant            = "termination_error"
)

var (
	// ErrLoggerNotConfigured indicates that no logger was supplied.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrProcessLauncherNotConfigured indicates that no process launcher was supplied.
	ErrProcessLauncherNotConfigured = errors.New(processLauncherNotConfiguredMessageConstant)
)

// ShellExecutor decorates a ProcessLauncher with structured logging and lifecycle events.
type ShellExecutor struct {
	logger        *zap.Logger
	launcher      ProcessLauncher
	eventObserver CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor from the provided logger and launcher.
func NewShellExecutor(logger *zap.Logger, launcher ProcessLauncher) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, launcher, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor that also notifies the observer.
func NewShellExecutorWithObserver(logger *zap.Logger, launcher ProcessLauncher, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if launcher == nil {
		return nil, ErrProcessLauncherNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, launcher: launcher, eventObserver: observer}, nil
}

// Execute runs the request through the launcher, logging and reporting its outcome.
func (executor *ShellExecutor) Execute(request InvocationRequest) (string, error) {
	executor.eventObserver.CommandStarted(request)
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandConstant, request.Command),
		zap.Strings(logFieldArgumentsConstant, request.ArgumentVector()),
		zap.Duration(logFieldTimeoutConstant, request.EffectiveTimeout()),
	)

	startTime := time.Now()
	output, executionError := executor.launcher.Execute(request)
	elapsed := time.Since(startTime)

	if executionError != nil {
		executor.logFailure(request, executionError, elapsed)
		executor.eventObserver.CommandExecutionFailed(request, executionError)
		return "", executionError
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandConstant, request.Command),
		zap.Duration(logFieldElapsedConstant, elapsed),
		zap.Int(logFieldOutputBytesConstant, len(output)),
	)
	executor.eventObserver.CommandCompleted(request, output)

	return output, nil
}

func (executor *ShellExecutor) logFailure(request InvocationRequest, failure error, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String(logFieldCommandConstant, request.Command),
		zap.Duration(logFieldElapsedConstant, elapsed),
		zap.String(logFieldFailureKindConstant, string(ClassifyFailure(failure))),
		zap.Error(failure),
	}

	var failedError CommandFailedError
	if errors.As(failure, &failedError) {
		fields = append(fields,
			zap.Int(logFieldExitCodeConstant, failedError.ExitCode),
			zap.String(logFieldStandardErrorConstant, failedError.StandardError),
		)
	}

	var timeoutError CommandTimeoutError
	if errors.As(failure, &timeoutError) && timeoutError.TerminationError != nil {
		fields = append(fields, zap.NamedError(logFieldTerminationErrorConstant, timeoutError.TerminationError))
	}

	executor.logger.Warn(commandFailedLogMessageConstant, fields...)
}
