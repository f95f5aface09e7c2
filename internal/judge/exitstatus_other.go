//go:build !linux

package judge

import "os/exec"

// rawExitStatus falls back to the portable exit code outside Linux, where
// this package's sandboxed execution path is unsupported anyway.
func rawExitStatus(cmd *exec.Cmd) int {
	return cmd.ProcessState.ExitCode()
}
