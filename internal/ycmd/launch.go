package ycmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/dshills/ycmdbridge/internal/logging"
)

// launchConfig bounds the launch sequence.
type launchConfig struct {
	// ReadyTimeout bounds how long the ready probe polls before the launch
	// is declared failed.
	ReadyTimeout time.Duration

	// ProbeInterval is the delay between ready probes.
	ProbeInterval time.Duration

	// IdleSuicideSeconds is passed to the backend so it terminates itself
	// if orphaned.
	IdleSuicideSeconds int
}

// defaultLaunchConfig returns the launch timing defaults.
func defaultLaunchConfig() launchConfig {
	return launchConfig{
		ReadyTimeout:       5 * time.Second,
		ProbeInterval:      100 * time.Millisecond,
		IdleSuicideSeconds: 600,
	}
}

// launch provisions, materializes options for, and spawns one backend
// instance, then waits until the backend answers its ready endpoint.
//
// Readiness is a real probe, not a fixed delay: /ready is polled until it
// answers or ReadyTimeout elapses. A process exit observed first wins and is
// mapped to a typed launch failure.
func launch(ctx context.Context, workspaceRoot string, settings Settings, cfg launchConfig, log *logging.Logger) (*Instance, error) {
	port, secret, err := provision()
	if err != nil {
		return nil, err
	}
	log.Debug("provisioned port %d, secret %s", port, logging.Fingerprint(secret))

	optionsPath, err := materializeOptions(settings, secret)
	if err != nil {
		return nil, err
	}

	argv := []string{
		settings.Python,
		settings.Path,
		fmt.Sprintf("--port=%d", port),
		fmt.Sprintf("--options_file=%s", optionsPath),
		fmt.Sprintf("--idle_suicide_seconds=%d", cfg.IdleSuicideSeconds),
	}
	name, args := wrapCommand(argv)

	cmd := exec.Command(name, args...)
	cmd.Dir = workspaceRoot
	setSysProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &LaunchError{Reason: LaunchReasonSpawn, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		return nil, &LaunchError{Reason: LaunchReasonSpawn, Err: err}
	}

	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		return nil, &LaunchError{Reason: LaunchReasonSpawn, Err: err}
	}

	proc := newProcess(cmd)
	log.Info("backend started (pid %d, port %d)", proc.Pid(), port)

	// Drain both streams continuously so the backend never blocks on a full
	// pipe. The backend logs on stderr; surface it at debug unless the
	// integration runs in debug mode.
	streamLevel := log.Debug
	if settings.Debug {
		streamLevel = log.Info
	}
	go drainStream(stdout, "ycmd stdout", streamLevel)
	go drainStream(stderr, "ycmd stderr", streamLevel)

	inst := &Instance{
		Port:          port,
		WorkspaceRoot: workspaceRoot,
		Settings:      settings,
		secret:        secret,
		proc:          proc,
	}
	inst.transport = NewTransport(port, secret, TransportOptions{Logger: log})

	if err := waitUntilReady(ctx, inst, cfg); err != nil {
		proc.Terminate(log)
		return nil, err
	}

	// The backend has read the options file; it carries the secret, so
	// remove it rather than leaving it for temp GC.
	if err := os.Remove(optionsPath); err != nil {
		log.Debug("options file cleanup: %v", err)
	}

	log.Info("backend ready (port %d)", port)
	return inst, nil
}

// waitUntilReady polls the backend's ready endpoint until it answers, the
// process exits, or the timeout elapses.
func waitUntilReady(ctx context.Context, inst *Instance, cfg launchConfig) error {
	deadline := time.NewTimer(cfg.ReadyTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(cfg.ProbeInterval)
	defer tick.Stop()

	for {
		select {
		case <-inst.proc.Done():
			return launchErrorForExit(inst.proc.ExitCode())
		case <-ctx.Done():
			return &LaunchError{Reason: LaunchReasonStartTimeout, Err: ctx.Err()}
		case <-deadline.C:
			return &LaunchError{Reason: LaunchReasonStartTimeout}
		case <-tick.C:
			probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeInterval)
			ready := inst.transport.IsReady(probeCtx)
			cancel()
			if ready {
				return nil
			}
		}
	}
}

// drainStream forwards a process output stream to the logger line by line.
func drainStream(r io.Reader, tag string, logf func(string, ...any)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)
	for scanner.Scan() {
		logf("%s: %s", tag, scanner.Text())
	}
}
