//go:build linux

package sandbox

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// isolationFlags enters a new hostname, PID, mount, IPC and network
// namespace in one call — the network namespace is the security-critical
// bit, since it leaves the child with no route to any network (spec.md
// §4.1 step 1).
const isolationFlags = unix.CLONE_NEWUTS |
	unix.CLONE_NEWPID |
	unix.CLONE_NEWNS |
	unix.CLONE_NEWIPC |
	unix.CLONE_NEWNET

// Enter performs the full launcher contract in-process: it never returns on
// success (the final step replaces the process image via exec); on failure
// it returns a *Error identifying which step failed. Privilege drop happens
// strictly after every mount/chroot operation and strictly before exec, and
// no step after Chroot ever touches a host path again.
func Enter(opts Options) error {
	err := opts.Validate()
	if err != nil {
		return err
	}

	err = unix.Unshare(isolationFlags)
	if err != nil {
		return fail(StepUnshare, err)
	}

	err = unix.Chdir(opts.RootDir)
	if err != nil {
		return fail(StepChdir, err)
	}

	// Every path from here on is relative to the jail (opts.RootDir), per
	// the security invariant that the launcher never resolves untrusted
	// paths against the host root after this point.

	// Disable mount-event propagation from the jail back to the host.
	err = unix.Mount("", "/", "", unix.MS_REC|unix.MS_PRIVATE, "")
	if err != nil {
		return fail(StepPrivatize, err)
	}

	err = bindMountReadOnly("/lib", "lib")
	if err != nil {
		return fail(StepBindLib, err)
	}

	err = bindMountReadOnly("/lib64", "lib64")
	if err != nil {
		return fail(StepBindLib64, err)
	}

	err = unix.Chroot(".")
	if err != nil {
		return fail(StepChroot, err)
	}

	// Group before user: once the uid is dropped the process can no longer
	// change its gid, so order matters.
	err = unix.Setgid(int(opts.GID))
	if err != nil {
		return fail(StepDropGroup, err)
	}

	err = unix.Setuid(int(opts.UID))
	if err != nil {
		return fail(StepDropUser, err)
	}

	// Empty environment except PATH=, per spec.md §4.1 step 7 and §6.
	env := []string{"PATH="}

	err = unix.Exec(opts.Program, opts.Argv, env)
	// unix.Exec only returns on failure.
	return fail(StepExec, err)
}

// bindMountReadOnly bind-mounts src onto dst (relative to the current
// directory, i.e. inside the jail) read-only and no-suid, with mount
// propagation left private by the earlier MS_REC|MS_PRIVATE remount of /.
func bindMountReadOnly(src, dst string) error {
	err := unix.Mount(src, dst, "", unix.MS_BIND, "")
	if err != nil {
		return fmt.Errorf("bind mount %s onto %s: %w", src, dst, err)
	}

	// A bind mount must be remounted to apply MS_RDONLY/MS_NOSUID; the
	// kernel ignores those flags on the initial MS_BIND call.
	err = unix.Mount("", dst, "", unix.MS_BIND|unix.MS_REMOUNT|unix.MS_RDONLY|unix.MS_NOSUID, "")
	if err != nil {
		return fmt.Errorf("remount %s read-only: %w", dst, err)
	}

	return nil
}
