//go:build !unix

package execshell

import (
	"errors"
	"os"
	"os/exec"
)

func isolateProcessGroup(*exec.Cmd) {}

func terminateProcess(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}
	if killError := executable.Process.Kill(); killError != nil && !errors.Is(killError, os.ErrProcessDone) {
		return killError
	}
	return nil
}
