package ycmd

import (
	"context"
	"time"

	"github.com/dshills/ycmdbridge/internal/logging"
)

// shutdownGrace bounds the polite shutdown request sent before the process
// tree is terminated.
const shutdownGrace = time.Second

// Instance is one live backend process bound to a workspace and settings.
// Instances are created and owned exclusively by the Supervisor; callers
// receive a reference that is valid only until the next supervisor-triggered
// reset, and must re-request it per operation.
type Instance struct {
	// Port the backend listens on (localhost only).
	Port int

	// WorkspaceRoot is the workspace this instance was launched for.
	WorkspaceRoot string

	// Settings the instance was created from; compared structurally for
	// reuse decisions.
	Settings Settings

	secret    []byte
	proc      *process
	transport *Transport
}

// Alive reports whether the backend process is still running.
func (i *Instance) Alive() bool {
	return i.proc != nil && i.proc.Alive()
}

// Pid returns the backend's process id (the shell wrapper's, on Windows).
func (i *Instance) Pid() int {
	if i.proc == nil {
		return 0
	}
	return i.proc.Pid()
}

// Transport returns the signed HTTP transport bound to this instance.
func (i *Instance) Transport() *Transport {
	return i.transport
}

// reap stops the backend and clears the process handle. A running backend is
// asked to shut down over the wire first, then the process tree is terminated.
// Best effort and idempotent: reaping an already-exited instance is a no-op.
func (i *Instance) reap(log *logging.Logger) {
	if i.proc == nil {
		return
	}
	log.Info("reaping backend (pid %d, port %d)", i.proc.Pid(), i.Port)

	if i.transport != nil && i.proc.Alive() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		if _, err := i.transport.Post(ctx, pathShutdown, map[string]any{}); err != nil {
			log.Debug("shutdown request: %v", err)
		}
		cancel()
	}

	i.proc.Terminate(log)
	i.proc = nil
	i.secret = nil
}
