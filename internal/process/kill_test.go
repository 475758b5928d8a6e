package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Real kill behavior is covered by browser session integration
//   tests since we cannot safely test actual process termination in unit tests.
// - Cannot test with PID 0 (kills current process group) or real PIDs.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import "testing"

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Verify function handles non-existent PID without panicking.
	//
	// Note: Cannot safely test with:
	// - PID 0: syscall.Kill(-0, SIGKILL) kills the current process group
	// - Negative PIDs: syscall.Kill(positive, SIGKILL) would target real processes
	KillProcessGroup(999999999)
}
