// Command safe-run is the setuid-root launcher (spec.md §4.1, §6). It is
// installed with the setuid bit so a non-root caller can build a jail,
// isolate it, and exec a target program under the judging uid/gid read from
// configuration.
//
// Usage: safe-run ROOT_DIR PROGRAM [ARGV...]
//
// Deliberately plain: no flags library, no logging stack, no third-party
// imports beyond internal/config, internal/sandbox and x/sys — grounded on
// fuidshift/main.go's raw os.Args parsing, because every import here is
// something a setuid binary drags along before it drops privilege.
// internal/config is the one exception: the judging uid/gid must come from
// the same config.toml the daemon validates (see internal/config.Validate),
// so this binary loads it directly rather than carrying a second, divergent
// source of truth baked in at build time.
package main

import (
	"fmt"
	"os"

	"github.com/magurofly/magjudge/internal/config"
	"github.com/magurofly/magjudge/internal/sandbox"
)

// configPath returns the configuration file to load, defaulting to the same
// "config.toml" relative path cmd/judged uses, overridable via
// MAGJUDGE_CONFIG so an operator can point the launcher at the daemon's
// actual config without changing the fixed ROOT_DIR/PROGRAM/ARGV contract.
func configPath() string {
	if p := os.Getenv("MAGJUDGE_CONFIG"); p != "" {
		return p
	}

	return "config.toml"
}

func main() {
	if len(os.Args) < 3 {
		usage(os.Args[0])
		os.Exit(1)
	}

	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, "safe-run: must run as root (setuid)")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "safe-run: %v\n", err)
		os.Exit(1)
	}

	rootDir := os.Args[1]
	program := os.Args[2]
	argv := append([]string{program}, os.Args[3:]...)

	err = sandbox.Enter(sandbox.Options{
		RootDir: rootDir,
		Program: program,
		Argv:    argv,
		UID:     cfg.Program.JudgeUID,
		GID:     cfg.Program.JudgeGID,
	})
	if err != nil {
		// Enter only returns on failure; partial state (lingering mounts,
		// an entered-but-not-exited namespace) is acceptable here because
		// the caller (the program lifecycle's Close) removes the jail
		// unconditionally on cleanup.
		fmt.Fprintf(os.Stderr, "safe-run: %v\n", err)
		os.Exit(1)
	}
}

func usage(me string) {
	fmt.Fprintf(os.Stderr, "Usage: %s ROOT_DIR PROGRAM [ARGV...]\n", me)
	fmt.Fprintln(os.Stderr, "Note: this program must be setuid root and called by a non-root user")
	fmt.Fprintln(os.Stderr, "Note: PROGRAM must be a path relative to ROOT_DIR")
	fmt.Fprintln(os.Stderr, "Note: ROOT_DIR/lib and ROOT_DIR/lib64 must exist as empty directories")
	fmt.Fprintln(os.Stderr, "Note: reads judge_uid/judge_gid from config.toml (override path via MAGJUDGE_CONFIG)")
}
