package judge

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/magurofly/magjudge/internal/config"
)

// sourcePath returns the transient source file location for a submission,
// e.g. source/<id>.rs.
func sourcePath(cfg *config.Program, submissionID string) string {
	return filepath.Join(cfg.SourceDir, fmt.Sprintf("%s.%s", submissionID, cfg.SourceExt))
}

// jailDir returns the per-submission jail root, e.g. execute/<id>/.
func jailDir(cfg *config.Program, submissionID string) string {
	return filepath.Join(cfg.ExecuteDir, submissionID)
}

// saveSource writes source code to its transient location and flushes it to
// disk, mirroring program/compile.rs's save_source.
func saveSource(cfg *config.Program, submissionID string, sourceCode []byte) error {
	path := sourcePath(cfg, submissionID)

	err := os.MkdirAll(cfg.SourceDir, 0o700)
	if err != nil {
		return fmt.Errorf("create source directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create source file: %w", err)
	}
	defer f.Close()

	_, err = f.Write(sourceCode)
	if err != nil {
		return fmt.Errorf("write source file: %w", err)
	}

	return f.Sync()
}

// compileArgs assembles the compiler's argv the way program/compile.rs's
// compile_args does: crate-name/edition/emit fixed, codegen options and
// externs taken from configuration, output directory pinned at the jail
// root, then the dependency search path and finally the source file.
func compileArgs(cfg *config.Program, submissionID string) []string {
	args := []string{
		"--crate-name=main",
		"--edition=2018",
		"--error-format=json",
		"--json=diagnostic-short",
		"--crate-type=bin",
		"--emit=link",
	}

	for _, opt := range cfg.CodegenOptions {
		args = append(args, "-C", opt)
	}

	// Sort extern names for deterministic argv across runs (map iteration
	// order is not stable in Go).
	names := make([]string, 0, len(cfg.Externs))
	for name := range cfg.Externs {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		args = append(args, fmt.Sprintf("--extern=%s=%s", name, cfg.Externs[name]))
	}

	args = append(args, fmt.Sprintf("--out-dir=%s", jailDir(cfg, submissionID)))
	args = append(args, "-L", fmt.Sprintf("dependency=%s", cfg.DependencyDir))
	args = append(args, sourcePath(cfg, submissionID))

	return args
}

// Compile invokes the configured compiler on submissionID's saved source and
// captures its exit status, stdout and stderr. The returned error is non-nil
// only for infrastructure failures (the compiler binary could not be
// started, e.g. not found or not executable); a compiler that runs and exits
// non-zero is reported through CompileResult.Status with a nil error —
// callers distinguish "compile error" from "system error" that way, per
// spec.md §4.2 step 6.
func Compile(cfg *config.Program, submissionID string) (*CompileResult, error) {
	args := compileArgs(cfg, submissionID)

	cmd := exec.Command(cfg.CompileCommand, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	status := 0

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status = exitErr.ExitCode()
		} else {
			// The compiler never ran at all (not found, permission denied).
			return nil, newError(KindSystemError, "start compiler %q: %w", cfg.CompileCommand, err)
		}
	}

	return &CompileResult{
		Status: status,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}
