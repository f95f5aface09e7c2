//go:build linux

package judge

import (
	"os/exec"
	"syscall"
)

// rawExitStatus returns the raw wait(2) status integer for a finished
// command, mirroring the original source's ExitStatusExt::into_raw(): a
// normal exit packs the exit code into the high byte, a signal-killed
// process (e.g. SIGKILL from the `timeout` wrapper) packs the signal number
// into the low bits. This is the "encoded exit status" spec.md §3 and §8
// refer to.
func rawExitStatus(cmd *exec.Cmd) int {
	ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus)
	if !ok {
		return cmd.ProcessState.ExitCode()
	}

	return int(ws)
}
