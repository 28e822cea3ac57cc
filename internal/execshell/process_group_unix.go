//go:build unix

package execshell

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// isolateProcessGroup starts the command as the leader of a new process group
// so that termination reaches every descendant holding the output pipes.
func isolateProcessGroup(executable *exec.Cmd) {
	executable.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminateProcess(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}
	if killError := syscall.Kill(-executable.Process.Pid, syscall.SIGKILL); killError == nil {
		return nil
	}
	if killError := executable.Process.Kill(); killError != nil && !errors.Is(killError, os.ErrProcessDone) {
		return killError
	}
	return nil
}
