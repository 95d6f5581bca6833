package ycmd

import (
	"errors"
	"os/exec"
	"time"

	"github.com/dshills/ycmdbridge/internal/logging"
)

// termGrace is how long Terminate waits after the polite signal before
// escalating to a hard kill.
const termGrace = 2 * time.Second

// process wraps a running backend command with exit tracking and
// platform-appropriate termination. Termination semantics differ per
// platform: on Unix the backend runs in its own process group and the whole
// group is signalled; on Windows the launch used a shell wrapper, so the
// shell's children are enumerated and terminated individually before the
// shell itself (see proc_windows.go).
type process struct {
	cmd  *exec.Cmd
	done chan struct{} // closed once Wait returns
	exit int           // valid after done is closed
}

// newProcess wraps a started command and begins waiting on it.
func newProcess(cmd *exec.Cmd) *process {
	p := &process{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go p.wait()
	return p
}

// wait reaps the child and records its exit code.
func (p *process) wait() {
	err := p.cmd.Wait()
	p.exit = exitCodeFromError(err)
	close(p.done)
}

// Pid returns the process id of the spawned command.
func (p *process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Alive reports whether the process is still running.
func (p *process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the process has exited.
func (p *process) Done() <-chan struct{} {
	return p.done
}

// ExitCode returns the exit code. Only meaningful after Done is closed.
func (p *process) ExitCode() int {
	return p.exit
}

// Terminate stops the process tree, best effort. It signals politely first,
// waits briefly, then kills. Errors are logged, never returned: the caller
// clears its reference regardless of how termination went.
func (p *process) Terminate(log *logging.Logger) {
	if !p.Alive() {
		return
	}

	if err := signalTree(p.Pid(), false); err != nil {
		log.Debug("terminate signal failed (pid %d): %v", p.Pid(), err)
	}

	select {
	case <-p.done:
		return
	case <-time.After(termGrace):
	}

	if err := signalTree(p.Pid(), true); err != nil {
		log.Warn("kill failed (pid %d): %v", p.Pid(), err)
	}
}

// exitCodeFromError extracts the exit code from exec.Cmd.Wait's error.
func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	// Wait failed for a non-exit reason (for example a signalled kill on
	// some platforms); report a sentinel the exit-code mapping treats as
	// unknown.
	return -1
}
