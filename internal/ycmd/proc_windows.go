//go:build windows

package ycmd

import (
	"os/exec"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// setSysProcAttr hides the console window the shell wrapper would otherwise
// flash.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

// wrapCommand re-quotes the argument vector and wraps it in a cmd.exe
// invocation. The backend path and options path may contain spaces, and
// cmd.exe strips one level of quoting.
func wrapCommand(argv []string) (string, []string) {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = quoteWindowsArg(a)
	}
	return "cmd.exe", []string{"/c", strings.Join(quoted, " ")}
}

// quoteWindowsArg wraps an argument in double quotes, escaping embedded ones.
func quoteWindowsArg(a string) string {
	if a == "" {
		return `""`
	}
	if !strings.ContainsAny(a, " \t\"") {
		return a
	}
	return `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
}

// signalTree terminates the shell wrapper's children, then the shell itself.
// Killing only the shell would orphan the interpreter it spawned, so the
// process table is snapshotted and every process whose parent is the shell is
// terminated directly. Grandchildren spawned by the interpreter can still
// escape in pathological cases; the backend's idle-suicide timer is the
// backstop for those.
func signalTree(pid int, kill bool) error {
	// Windows has no polite signal for a detached console process; both
	// passes terminate.
	_ = kill

	for _, child := range childPids(uint32(pid)) {
		terminatePid(child)
	}
	return terminatePid(uint32(pid))
}

// childPids returns the pids whose parent is the given pid.
func childPids(parent uint32) []uint32 {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var children []uint32
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return nil
	}
	for {
		if entry.ParentProcessID == parent {
			children = append(children, entry.ProcessID)
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}
	return children
}

// terminatePid force-terminates a single process by pid.
func terminatePid(pid uint32) error {
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		// Already exited, or access denied; either way best effort.
		return nil
	}
	defer windows.CloseHandle(h)
	return windows.TerminateProcess(h, 1)
}
