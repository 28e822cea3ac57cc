//go:build unix

package execshell_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdrun/internal/execshell"
)

const (
	testShellPathConstant          = "/bin/sh"
	testShellScriptFlagConstant    = "-c"
	testGeneratedLinesTemplate     = "i=0; while [ $i -lt %d ]; do echo line$i; i=$((i+1)); done"
	testExpectedLineTemplate       = "line%d\n"
	testShortTimeoutConstant       = 300 * time.Millisecond
	testTimeoutUpperBoundConstant  = 3 * time.Second
	testProcessIdentifierFileName  = "pid"
	testMissingExecutableConstant  = "/nonexistent/cmdrun-missing-binary"
	testConcurrentInvocationsCount = 8
)

func shellRequest(script string) execshell.InvocationRequest {
	return execshell.NewInvocationRequest(testShellPathConstant, testShellScriptFlagConstant, []string{script})
}

func TestOSProcessLauncherCapturesStandardOutputLines(testInstance *testing.T) {
	testCases := []struct {
		name      string
		lineCount int
	}{
		{name: "no_lines", lineCount: 0},
		{name: "single_line", lineCount: 1},
		{name: "thousand_lines", lineCount: 1000},
	}

	launcher := execshell.NewOSProcessLauncher()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			output, executionError := launcher.Execute(shellRequest(fmt.Sprintf(testGeneratedLinesTemplate, testCase.lineCount)))
			require.NoError(testInstance, executionError)

			var expectedOutput strings.Builder
			for lineIndex := 0; lineIndex < testCase.lineCount; lineIndex++ {
				expectedOutput.WriteString(fmt.Sprintf(testExpectedLineTemplate, lineIndex))
			}
			require.Equal(testInstance, expectedOutput.String(), output)
			require.Equal(testInstance, testCase.lineCount, strings.Count(output, "\n"))
		})
	}
}

func TestOSProcessLauncherTerminatesFinalLine(testInstance *testing.T) {
	output, executionError := execshell.NewOSProcessLauncher().Execute(shellRequest("printf 'first\\nsecond'"))

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "first\nsecond\n", output)
}

func TestOSProcessLauncherReportsNonZeroExitWithStandardError(testInstance *testing.T) {
	output, executionError := execshell.NewOSProcessLauncher().Execute(shellRequest("echo partial; echo first >&2; echo second >&2; exit 3"))

	require.Empty(testInstance, output)
	var failedError execshell.CommandFailedError
	require.True(testInstance, errors.As(executionError, &failedError))
	require.Equal(testInstance, 3, failedError.ExitCode)
	require.Equal(testInstance, "first\nsecond\n", failedError.StandardError)
	require.Equal(testInstance, execshell.FailureKindNonZeroExit, execshell.ClassifyFailure(executionError))
}

func TestOSProcessLauncherDrainsBothStreamsWithoutDeadlock(testInstance *testing.T) {
	script := "i=0; while [ $i -lt 5000 ]; do echo out$i; echo err$i >&2; i=$((i+1)); done"

	output, executionError := execshell.NewOSProcessLauncher().Execute(shellRequest(script).WithTimeout(20 * time.Second))

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, 5000, strings.Count(output, "\n"))
	require.True(testInstance, strings.HasPrefix(output, "out0\nout1\n"))
	require.True(testInstance, strings.HasSuffix(output, "out4999\n"))
}

func TestOSProcessLauncherTimeoutTerminatesProcess(testInstance *testing.T) {
	processIdentifierPath := filepath.Join(testInstance.TempDir(), testProcessIdentifierFileName)
	script := fmt.Sprintf("echo $$ > %s; sleep %d", processIdentifierPath, int((2*testShortTimeoutConstant).Seconds())+5)

	startTime := time.Now()
	output, executionError := execshell.NewOSProcessLauncher().Execute(shellRequest(script).WithTimeout(testShortTimeoutConstant))
	elapsed := time.Since(startTime)

	require.Empty(testInstance, output)
	require.ErrorIs(testInstance, executionError, execshell.ErrCommandTimedOut)
	require.Equal(testInstance, execshell.FailureKindTimeout, execshell.ClassifyFailure(executionError))
	require.Less(testInstance, elapsed, testTimeoutUpperBoundConstant)

	var timeoutError execshell.CommandTimeoutError
	require.True(testInstance, errors.As(executionError, &timeoutError))
	require.Equal(testInstance, testShortTimeoutConstant, timeoutError.Timeout)

	processIdentifierContent, readError := os.ReadFile(processIdentifierPath)
	require.NoError(testInstance, readError)
	processIdentifier, parseError := strconv.Atoi(strings.TrimSpace(string(processIdentifierContent)))
	require.NoError(testInstance, parseError)

	signalError := syscall.Kill(processIdentifier, syscall.Signal(0))
	require.ErrorIs(testInstance, signalError, syscall.ESRCH)
}

func TestOSProcessLauncherReportsLaunchFailure(testInstance *testing.T) {
	output, executionError := execshell.NewOSProcessLauncher().Execute(execshell.NewInvocationRequest(testMissingExecutableConstant, "status", nil))

	require.Empty(testInstance, output)
	var launchError execshell.CommandExecutionError
	require.True(testInstance, errors.As(executionError, &launchError))
	require.NotNil(testInstance, errors.Unwrap(executionError))
	require.Equal(testInstance, execshell.FailureKindLaunchFailure, execshell.ClassifyFailure(executionError))
}

func TestOSProcessLauncherIsolatesConcurrentInvocations(testInstance *testing.T) {
	launcher := execshell.NewOSProcessLauncher()

	outputs := make([]string, testConcurrentInvocationsCount)
	failures := make([]error, testConcurrentInvocationsCount)

	var waitGroup sync.WaitGroup
	for invocationIndex := 0; invocationIndex < testConcurrentInvocationsCount; invocationIndex++ {
		waitGroup.Add(1)
		go func(invocationIndex int) {
			defer waitGroup.Done()
			script := fmt.Sprintf("i=0; while [ $i -lt 200 ]; do echo worker%d; i=$((i+1)); done", invocationIndex)
			outputs[invocationIndex], failures[invocationIndex] = launcher.Execute(shellRequest(script))
		}(invocationIndex)
	}
	waitGroup.Wait()

	for invocationIndex := 0; invocationIndex < testConcurrentInvocationsCount; invocationIndex++ {
		require.NoError(testInstance, failures[invocationIndex])
		expectedOutput := strings.Repeat(fmt.Sprintf("worker%d\n", invocationIndex), 200)
		require.Equal(testInstance, expectedOutput, outputs[invocationIndex])
	}
}

func TestOSProcessLauncherPassesQuotedArgumentsWithoutShell(testInstance *testing.T) {
	request := execshell.NewInvocationRequest(testShellPathConstant, testShellScriptFlagConstant, []string{"IFS=; printf '%s|' $@", "argv0", "two words", "$HOME"})

	output, executionError := execshell.NewOSProcessLauncher().Execute(request)

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "two words|$HOME|\n", output)
}
