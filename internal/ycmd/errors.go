package ycmd

import (
	"errors"
	"fmt"
)

// Standard errors returned by the ycmd client.
var (
	// ErrNoInstance indicates no backend instance is available.
	ErrNoInstance = errors.New("no backend instance available")

	// ErrInstanceDead indicates the held backend process has exited.
	ErrInstanceDead = errors.New("backend process has exited")

	// ErrSupervisorClosed indicates the supervisor has been shut down.
	ErrSupervisorClosed = errors.New("supervisor closed")

	// ErrProvision indicates port or secret acquisition failed.
	ErrProvision = errors.New("provisioning failed")

	// ErrOptions indicates the options file could not be materialized.
	ErrOptions = errors.New("options materialization failed")

	// ErrBadResponseHMAC indicates a backend response failed signature verification.
	ErrBadResponseHMAC = errors.New("response HMAC verification failed")

	// ErrBackendStatus indicates the backend answered with a non-success status.
	ErrBackendStatus = errors.New("backend returned error status")
)

// Reserved backend exit codes. The backend exits with one of these during
// startup when its compiled core cannot be used.
const (
	exitCoreLoad    = 3
	exitCoreMissing = 4
	exitCorePython2 = 5
	exitCorePython3 = 6
	exitCoreStale   = 7
)

// LaunchReason classifies why a backend launch failed.
type LaunchReason int

const (
	// LaunchReasonUnknown is any failure not covered by a reserved exit code.
	LaunchReasonUnknown LaunchReason = iota
	// LaunchReasonCoreLoad means the compiled core library failed to load.
	LaunchReasonCoreLoad
	// LaunchReasonCoreMissing means the core library was not found (not compiled).
	LaunchReasonCoreMissing
	// LaunchReasonCorePython2 means the core was compiled for Python 2 but run under Python 3.
	LaunchReasonCorePython2
	// LaunchReasonCorePython3 means the core was compiled for Python 3 but run under Python 2.
	LaunchReasonCorePython3
	// LaunchReasonCoreStale means the core library is out of date and must be recompiled.
	LaunchReasonCoreStale
	// LaunchReasonStartTimeout means the backend never answered its ready probe.
	LaunchReasonStartTimeout
	// LaunchReasonSpawn means the process could not be started at all.
	LaunchReasonSpawn
)

// String returns a human-readable reason name.
func (r LaunchReason) String() string {
	switch r {
	case LaunchReasonCoreLoad:
		return "core library failed to load"
	case LaunchReasonCoreMissing:
		return "core library not detected; compile the ycmd core"
	case LaunchReasonCorePython2:
		return "core library compiled for Python 2 but run under Python 3"
	case LaunchReasonCorePython3:
		return "core library compiled for Python 3 but run under Python 2"
	case LaunchReasonCoreStale:
		return "core library out of date; recompile the ycmd core"
	case LaunchReasonStartTimeout:
		return "backend did not become ready in time"
	case LaunchReasonSpawn:
		return "backend process could not be started"
	default:
		return "unknown launch failure"
	}
}

// LaunchError describes a failed backend launch.
type LaunchError struct {
	Reason   LaunchReason
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("launch failed: %s: %v", e.Reason, e.Err)
	case e.Reason == LaunchReasonUnknown:
		return fmt.Sprintf("launch failed: %s (exit code %d)", e.Reason, e.ExitCode)
	default:
		return "launch failed: " + e.Reason.String()
	}
}

// Unwrap returns the wrapped error, if any.
func (e *LaunchError) Unwrap() error { return e.Err }

// launchErrorForExit maps a backend exit code observed during startup to a
// typed launch failure. Exactly one failure value is produced per code; codes
// outside the reserved range carry the raw code.
func launchErrorForExit(code int) *LaunchError {
	switch code {
	case exitCoreLoad:
		return &LaunchError{Reason: LaunchReasonCoreLoad, ExitCode: code}
	case exitCoreMissing:
		return &LaunchError{Reason: LaunchReasonCoreMissing, ExitCode: code}
	case exitCorePython2:
		return &LaunchError{Reason: LaunchReasonCorePython2, ExitCode: code}
	case exitCorePython3:
		return &LaunchError{Reason: LaunchReasonCorePython3, ExitCode: code}
	case exitCoreStale:
		return &LaunchError{Reason: LaunchReasonCoreStale, ExitCode: code}
	default:
		return &LaunchError{Reason: LaunchReasonUnknown, ExitCode: code}
	}
}
