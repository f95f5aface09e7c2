// Package sandbox implements the contract of the setuid-root launcher
// (cmd/safe-run): build a throwaway jail, enter fresh kernel namespaces,
// bind-mount read-only system libraries into it, chroot, drop privilege to a
// fixed non-root uid/gid, and exec the target program with an empty
// environment.
//
// This is the security-critical boundary of the whole system (spec.md §4.1,
// §6). Every operation below is expressed through golang.org/x/sys/unix, the
// way the teacher's lxd/daemon/daemon_share_mounts.go and
// lxd-migrate/main_migrate.go drive unshare/mount; nothing here imports a logging or convenience layer —
// minimizing what a setuid binary links is itself part of the contract.
package sandbox

import "fmt"

// Options configures one invocation of Enter.
type Options struct {
	// RootDir is the jail root. It must already contain empty lib/ and
	// lib64/ subdirectories and Program reachable as RootDir/Program.
	RootDir string

	// Program is the target binary's path, relative to RootDir.
	Program string

	// Argv is the full argv passed to the target program; Argv[0] is
	// conventionally Program.
	Argv []string

	// UID/GID are the fixed non-root judging account the process drops to.
	// They must be non-zero: Enter refuses to drop to root.
	UID uint32
	GID uint32
}

// Step names a point of failure, so callers can distinguish "mount setup
// failed" from "chroot failed" from "exec failed" without depending on a
// specific process exit code (spec.md §4.1: "the contract does not require a
// specific code").
type Step string

const (
	StepUnshare    Step = "unshare"
	StepChdir      Step = "chdir"
	StepPrivatize  Step = "privatize-root"
	StepBindLib    Step = "bind-mount-lib"
	StepBindLib64  Step = "bind-mount-lib64"
	StepChroot     Step = "chroot"
	StepDropGroup  Step = "setgid"
	StepDropUser   Step = "setuid"
	StepExec       Step = "exec"
	StepValidation Step = "validate"
)

// Error wraps a failed Step with its underlying cause.
type Error struct {
	Step Step
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sandbox: %s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(step Step, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Step: step, Err: err}
}

// Validate checks Options before any privileged operation is attempted.
func (o Options) Validate() error {
	if o.RootDir == "" {
		return fail(StepValidation, fmt.Errorf("root dir must not be empty"))
	}

	if o.Program == "" {
		return fail(StepValidation, fmt.Errorf("program must not be empty"))
	}

	if o.UID == 0 || o.GID == 0 {
		return fail(StepValidation, fmt.Errorf("refusing to drop privilege to uid/gid 0"))
	}

	if len(o.Argv) == 0 {
		return fail(StepValidation, fmt.Errorf("argv must contain at least the program name"))
	}

	return nil
}
