package execshell

import (
	"errors"
	"io"
	"os/exec"
	"time"
)

const (
	// DefaultOutputDrainGracePeriod bounds how long output copying may continue after the process exits.
	DefaultOutputDrainGracePeriod = 5 * time.Second
)

var errProcessStateUnavailable = errors.New("process exit status unavailable")

// ProcessLauncher executes an invocation to completion and returns its standard output.
type ProcessLauncher interface {
	Execute(request InvocationRequest) (string, error)
}

// OSProcessLauncher executes invocations using os/exec without shell interpretation.
type OSProcessLauncher struct {
	outputDrainGracePeriod time.Duration
}

// NewOSProcessLauncher constructs a launcher with the default output drain grace period.
func NewOSProcessLauncher() *OSProcessLauncher {
	return &OSProcessLauncher{outputDrainGracePeriod: DefaultOutputDrainGracePeriod}
}

// NewOSProcessLauncherWithGracePeriod constructs a launcher with a custom output drain grace period.
func NewOSProcessLauncherWithGracePeriod(outputDrainGracePeriod time.Duration) *OSProcessLauncher {
	if outputDrainGracePeriod <= 0 {
		outputDrainGracePeriod = DefaultOutputDrainGracePeriod
	}
	return &OSProcessLauncher{outputDrainGracePeriod: outputDrainGracePeriod}
}

// Execute starts the process, captures both output streams, and enforces the request timeout.
func (launcher *OSProcessLauncher) Execute(request InvocationRequest) (string, error) {
	executable := exec.Command(request.Command, request.ArgumentVector()...)
	isolateProcessGroup(executable)
	executable.WaitDelay = launcher.resolveOutputDrainGracePeriod()

	standardOutputReader, standardOutputWriter := io.Pipe()
	standardErrorReader, standardErrorWriter := io.Pipe()
	executable.Stdout = standardOutputWriter
	executable.Stderr = standardErrorWriter

	defer standardOutputReader.Close()
	defer standardErrorReader.Close()

	if startError := executable.Start(); startError != nil {
		standardOutputWriter.Close()
		standardErrorWriter.Close()
		return "", CommandExecutionError{Request: request, Cause: startError}
	}

	standardOutput := newStreamAccumulator()
	standardError := newStreamAccumulator()
	go standardOutput.drain(standardOutputReader)
	go standardError.drain(standardErrorReader)

	exitResults := make(chan error, 1)
	go func() {
		waitError := executable.Wait()
		standardOutputWriter.Close()
		standardErrorWriter.Close()
		exitResults <- waitError
	}()

	timeout := request.EffectiveTimeout()
	timeoutTimer := time.NewTimer(timeout)
	defer timeoutTimer.Stop()

	waitError, timedOut, terminationError := awaitExit(exitResults, timeoutTimer.C, func() error {
		return terminateProcess(executable)
	})

	standardOutput.wait()
	standardError.wait()

	if timedOut {
		return "", CommandTimeoutError{Request: request, Timeout: timeout, TerminationError: terminationError}
	}

	if executable.ProcessState == nil {
		if waitError == nil {
			waitError = errProcessStateUnavailable
		}
		return "", CommandExecutionError{Request: request, Cause: waitError}
	}

	if exitCode := executable.ProcessState.ExitCode(); exitCode != 0 {
		return "", CommandFailedError{Request: request, ExitCode: exitCode, StandardError: standardError.String()}
	}

	return standardOutput.String(), nil
}

// awaitExit waits for the exit result or the deadline. An exit result already
// available when the deadline fires wins, and terminate is not called.
func awaitExit(exitResults <-chan error, deadline <-chan time.Time, terminate func() error) (waitError error, timedOut bool, terminationError error) {
	select {
	case waitError = <-exitResults:
		return waitError, false, nil
	case <-deadline:
	}

	select {
	case waitError = <-exitResults:
		return waitError, false, nil
	default:
	}

	terminationError = terminate()
	return <-exitResults, true, terminationError
}

func (launcher *OSProcessLauncher) resolveOutputDrainGracePeriod() time.Duration {
	if launcher == nil || launcher.outputDrainGracePeriod <= 0 {
		return DefaultOutputDrainGracePeriod
	}
	return launcher.outputDrainGracePeriod
}
