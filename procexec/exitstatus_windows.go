//go:build windows

package procexec

import "os/exec"

// RawExitStatus is the raw OS representation of an exit status on
// Windows: a DWORD.
type RawExitStatus = uint32

func statusFromProcessState(exitErr *exec.ExitError) ExitStatus {
	return exitStatusFromCode(exitErr.ExitCode())
}

// ExitStatusFromRaw materializes an ExitStatus from a raw Windows DWORD
// exit code without going through a real Wait call. It exists for test
// use only — production code obtains an ExitStatus from Child.Wait, or
// replays a stored one via NewExitStatus.
func ExitStatusFromRaw(raw RawExitStatus) ExitStatus {
	return exitStatusFromCode(int(raw))
}
