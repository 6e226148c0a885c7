//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; a group that already exited returns ESRCH.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// setProcessGroup starts cmd in its own process group so that
// KillProcessGroup reaches the shell and everything it spawned.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// shellArgs returns the interpreter invocation for a command line.
func shellArgs(line string) (string, []string) {
	return "sh", []string{"-c", line}
}
