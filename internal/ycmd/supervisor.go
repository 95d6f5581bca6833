package ycmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/ycmdbridge/internal/logging"
)

// SupervisorState is the supervisor's lifecycle state.
type SupervisorState int

const (
	// SupervisorStateIdle means no instance is held and no start is running.
	SupervisorStateIdle SupervisorState = iota
	// SupervisorStateStarting means a launch is in progress.
	SupervisorStateStarting
	// SupervisorStateReady means a live instance is held.
	SupervisorStateReady
	// SupervisorStateFailed means the last launch failed; the next call retries.
	SupervisorStateFailed
)

// String returns a human-readable state name.
func (s SupervisorState) String() string {
	switch s {
	case SupervisorStateIdle:
		return "idle"
	case SupervisorStateStarting:
		return "starting"
	case SupervisorStateReady:
		return "ready"
	case SupervisorStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SupervisorOptions configures the supervisor.
type SupervisorOptions struct {
	// Logger receives lifecycle logging. Defaults to a discard logger.
	Logger *logging.Logger

	// ReadyTimeout bounds the backend ready probe. Default: 5s.
	ReadyTimeout time.Duration

	// ProbeInterval is the delay between ready probes. Default: 100ms.
	ProbeInterval time.Duration

	// IdleSuicideSeconds is the backend's self-termination timer. Default: 600.
	IdleSuicideSeconds int
}

// launchFunc is the start sequence; replaced in tests.
type launchFunc func(ctx context.Context, workspaceRoot string, settings Settings) (*Instance, error)

// Supervisor owns the single live backend instance. It decides whether the
// held instance is still valid for a requested (workspace, settings) pair,
// serializes concurrent start attempts, and exposes the live instance to
// callers.
//
// The state machine (Idle, Starting, Ready, Failed) lives behind one mutex;
// callers arriving while a start is in progress park on a condition variable
// and re-evaluate the current state when woken. At most one backend process
// is being created at a time, and callers never observe a half-initialized
// instance.
type Supervisor struct {
	mu   sync.Mutex
	cond *sync.Cond

	state   SupervisorState
	inst    *Instance
	lastErr error
	closed  bool

	launch launchFunc
	log    *logging.Logger
}

// NewSupervisor creates a supervisor. No backend is started until the first
// GetInstance call.
func NewSupervisor(opts SupervisorOptions) *Supervisor {
	log := opts.Logger
	if log == nil {
		log = logging.Null
	}
	log = log.WithComponent("supervisor")

	cfg := defaultLaunchConfig()
	if opts.ReadyTimeout > 0 {
		cfg.ReadyTimeout = opts.ReadyTimeout
	}
	if opts.ProbeInterval > 0 {
		cfg.ProbeInterval = opts.ProbeInterval
	}
	if opts.IdleSuicideSeconds > 0 {
		cfg.IdleSuicideSeconds = opts.IdleSuicideSeconds
	}

	s := &Supervisor{
		state: SupervisorStateIdle,
		log:   log,
	}
	s.cond = sync.NewCond(&s.mu)
	s.launch = func(ctx context.Context, root string, settings Settings) (*Instance, error) {
		return launch(ctx, root, settings, cfg, log)
	}
	return s
}

// GetInstance returns the live instance for the given workspace root and
// settings, launching or replacing the backend as needed.
//
// If the held instance matches (same root, structurally equal settings) and
// its process is alive, it is returned unchanged. Otherwise any prior
// instance is reaped first and a fresh one launched; the old process is never
// left running alongside the new one. Launch failures are logged and
// returned; the supervisor stays retryable, so a subsequent call attempts a
// fresh launch.
func (s *Supervisor) GetInstance(ctx context.Context, workspaceRoot string, settings Settings) (*Instance, error) {
	if !settings.Valid() {
		return nil, fmt.Errorf("%w: ycmd path not configured", ErrNoInstance)
	}
	workspaceRoot = normalizePath(workspaceRoot)

	s.mu.Lock()
	for {
		if s.closed {
			s.mu.Unlock()
			return nil, ErrSupervisorClosed
		}
		if s.state != SupervisorStateStarting {
			break
		}
		// Park until the in-flight start resolves, then re-evaluate from
		// scratch: the start may have been for a different workspace.
		s.cond.Wait()
	}

	if s.state == SupervisorStateReady && s.inst != nil &&
		s.inst.WorkspaceRoot == workspaceRoot &&
		s.inst.Settings.Equal(settings) &&
		s.inst.Alive() {
		inst := s.inst
		s.mu.Unlock()
		return inst, nil
	}

	// Held instance is absent, dead, or for a different (root, settings).
	old := s.inst
	if old != nil && !old.Alive() {
		s.log.Info("replacing backend: %v", ErrInstanceDead)
	}
	s.inst = nil
	s.state = SupervisorStateStarting
	s.mu.Unlock()

	inst, err := s.runLaunch(ctx, old, workspaceRoot, settings)

	s.mu.Lock()
	// The state is reset on every path out of Starting, including panic
	// recovery inside runLaunch; the supervisor must never wedge.
	if err != nil {
		s.state = SupervisorStateFailed
		s.lastErr = err
		s.log.Error("backend start failed: %v", err)
	} else if s.closed {
		s.state = SupervisorStateIdle
		err = ErrSupervisorClosed
	} else {
		s.state = SupervisorStateReady
		s.inst = inst
	}
	s.cond.Broadcast()
	closed := s.closed
	s.mu.Unlock()

	if closed && inst != nil {
		inst.reap(s.log)
		return nil, ErrSupervisorClosed
	}
	return inst, err
}

// runLaunch reaps the prior instance and drives the launch sequence,
// converting panics into errors so the Starting state is always released.
func (s *Supervisor) runLaunch(ctx context.Context, old *Instance, workspaceRoot string, settings Settings) (inst *Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = fmt.Errorf("launch panic: %v", r)
		}
	}()

	if old != nil {
		old.reap(s.log)
	}

	return s.launch(ctx, workspaceRoot, settings)
}

// Reset reaps any held instance and returns the supervisor to Idle.
// Idempotent: resetting with no instance, or with an already-exited process,
// succeeds and clears the slot.
func (s *Supervisor) Reset(ctx context.Context) {
	s.mu.Lock()
	for s.state == SupervisorStateStarting {
		s.cond.Wait()
	}
	old := s.inst
	s.inst = nil
	s.lastErr = nil
	if !s.closed {
		s.state = SupervisorStateIdle
	}
	s.cond.Broadcast()
	s.mu.Unlock()

	if old != nil {
		old.reap(s.log)
	}
}

// Close shuts the supervisor down permanently: the held instance is reaped
// and all future GetInstance calls fail with ErrSupervisorClosed.
func (s *Supervisor) Close(ctx context.Context) {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.Reset(ctx)
}

// State returns the current supervisor state.
func (s *Supervisor) State() SupervisorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent launch failure, if any.
func (s *Supervisor) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
