package ycmd

import (
	"strings"
	"testing"
)

func TestLaunchErrorForExit(t *testing.T) {
	tests := []struct {
		code   int
		reason LaunchReason
	}{
		{3, LaunchReasonCoreLoad},
		{4, LaunchReasonCoreMissing},
		{5, LaunchReasonCorePython2},
		{6, LaunchReasonCorePython3},
		{7, LaunchReasonCoreStale},
		{0, LaunchReasonUnknown},
		{1, LaunchReasonUnknown},
		{42, LaunchReasonUnknown},
		{-1, LaunchReasonUnknown},
	}

	for _, tt := range tests {
		err := launchErrorForExit(tt.code)
		if err.Reason != tt.reason {
			t.Errorf("launchErrorForExit(%d).Reason = %v, want %v", tt.code, err.Reason, tt.reason)
		}
		if err.ExitCode != tt.code {
			t.Errorf("launchErrorForExit(%d).ExitCode = %d, want %d", tt.code, err.ExitCode, tt.code)
		}
	}
}

func TestLaunchError_CoreMissingMessage(t *testing.T) {
	err := launchErrorForExit(4)
	if !strings.Contains(err.Error(), "core library not detected") {
		t.Errorf("exit code 4 should describe a missing core library, got %q", err.Error())
	}
}

func TestLaunchError_UnknownCarriesCode(t *testing.T) {
	err := launchErrorForExit(42)
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("unknown launch failure should carry the exit code, got %q", err.Error())
	}
}

func TestLaunchReason_String(t *testing.T) {
	tests := []struct {
		reason   LaunchReason
		contains string
	}{
		{LaunchReasonCoreLoad, "failed to load"},
		{LaunchReasonCoreMissing, "not detected"},
		{LaunchReasonCorePython2, "Python 2"},
		{LaunchReasonCorePython3, "Python 3"},
		{LaunchReasonCoreStale, "out of date"},
		{LaunchReasonStartTimeout, "ready"},
		{LaunchReasonSpawn, "started"},
		{LaunchReasonUnknown, "unknown"},
	}

	for _, tt := range tests {
		got := tt.reason.String()
		if !strings.Contains(got, tt.contains) {
			t.Errorf("LaunchReason(%d).String() = %q, want it to contain %q", tt.reason, got, tt.contains)
		}
	}
}
