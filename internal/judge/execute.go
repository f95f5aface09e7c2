package judge

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/magurofly/magjudge/internal/config"
)

// Execute runs the compiled program once against input inside the sandbox,
// via `timeout -s9 <time_limit> <launcher> <jail> main` (spec.md §4.2).
// Wall-clock duration spans the full spawn-to-reap interval, including
// launcher overhead, matching the figure the original measured with
// time::Instant across the same boundary.
func Execute(cfg *config.Program, submissionID, input string) (*ExecutionResult, error) {
	jail := jailDir(cfg, submissionID)

	args := []string{
		"-s9",
		strconv.FormatUint(cfg.TimeLimitSeconds, 10),
		cfg.LauncherPath,
		jail,
		"main",
	}

	cmd := exec.Command("timeout", args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, newError(KindSystemError, "create stdin pipe: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()

	err = cmd.Start()
	if err != nil {
		return nil, newError(KindSystemError, "start sandboxed run: %w", err)
	}

	// Register the child with every configured memory cgroup right after
	// spawn. This is racy — the child may already have exec'd by the time
	// the write lands — and the design accepts that, since the wall-clock
	// timeout above also bounds the run (spec.md §4.2 "Algorithmic notes").
	registerCgroups(cfg.CgroupTasksPaths, cmd.Process.Pid)

	_, err = stdin.Write([]byte(input))
	if err != nil {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		return nil, newError(KindSystemError, "write stdin: %w", err)
	}

	err = stdin.Close()
	if err != nil {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		return nil, newError(KindSystemError, "close stdin: %w", err)
	}

	err = cmd.Wait()

	elapsed := time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if !isExitError(err, &exitErr) {
			return nil, newError(KindSystemError, "wait for sandboxed run: %w", err)
		}
	}

	return &ExecutionResult{
		Status: rawExitStatus(cmd),
		TimeMs: elapsed.Milliseconds(),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}

func isExitError(err error, target **exec.ExitError) bool {
	exitErr, ok := err.(*exec.ExitError)
	if ok {
		*target = exitErr
	}

	return ok
}

// registerCgroups appends pid to every configured cgroup tasks file. Per
// spec.md §4.2, failures here are tolerated (best-effort): a cgroup that
// cannot be written to still leaves the run bounded by the SIGKILL timeout.
func registerCgroups(paths []string, pid int) {
	line := []byte(fmt.Sprintf("%d\n", pid))

	for _, path := range paths {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			continue
		}

		_, _ = f.Write(line)
		_ = f.Close()
	}
}
