//go:build !windows

package ycmd

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setSysProcAttr places the backend in its own process group so the whole
// tree can be signalled at once.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// wrapCommand spawns the interpreter directly; no shell is involved on Unix.
func wrapCommand(argv []string) (string, []string) {
	return argv[0], argv[1:]
}

// signalTree signals the backend's process group. The negative pid addresses
// the group created at spawn time.
func signalTree(pid int, kill bool) error {
	sig := unix.SIGTERM
	if kill {
		sig = unix.SIGKILL
	}
	err := unix.Kill(-pid, sig)
	if err == unix.ESRCH {
		// Already gone.
		return nil
	}
	return err
}
