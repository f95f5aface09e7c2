package judge

import (
	"os"
	"path/filepath"

	"github.com/magurofly/magjudge/internal/config"
	"github.com/magurofly/magjudge/internal/revert"
	"github.com/magurofly/magjudge/internal/validate"
)

// Program is the per-submission lifecycle handle of spec.md §4.2: it owns
// the jail directory from construction until Close, and carries the one
// CompileResult produced along the way. It does not distinguish "compiler
// ran and returned non-zero" from "compiler ran and returned zero" — callers
// inspect CompileResult().Status to decide whether to proceed to runs.
type Program struct {
	cfg          *config.Program
	submissionID string
	compile      *CompileResult
}

// NewProgram creates the submission's working directory, persists its
// source, invokes the compiler, captures the result, and deletes the saved
// source file. On any failure the jail directory built so far is removed
// before returning, via internal/revert (mirroring the teacher's
// revert.New()/defer r.Fail() idiom).
func NewProgram(cfg *config.Program, submissionID string, sourceCode []byte) (*Program, error) {
	err := validate.IsSubmissionID(submissionID)
	if err != nil {
		return nil, newError(KindBadRequest, "invalid submission id: %w", err)
	}

	jail := jailDir(cfg, submissionID)

	r := revert.New()
	defer r.Fail()

	err = os.MkdirAll(jail, 0o700)
	if err != nil {
		return nil, newError(KindSystemError, "create jail directory: %w", err)
	}

	r.Add(func() { _ = os.RemoveAll(jail) })

	err = os.MkdirAll(filepath.Join(jail, "lib"), 0o700)
	if err != nil {
		return nil, newError(KindSystemError, "create lib mount point: %w", err)
	}

	err = os.MkdirAll(filepath.Join(jail, "lib64"), 0o700)
	if err != nil {
		return nil, newError(KindSystemError, "create lib64 mount point: %w", err)
	}

	err = saveSource(cfg, submissionID, sourceCode)
	if err != nil {
		return nil, newError(KindSystemError, "save source: %w", err)
	}

	// The source file is transient regardless of whether the compiler
	// succeeds (spec.md §4.2 step 5).
	defer func() { _ = os.Remove(sourcePath(cfg, submissionID)) }()

	compileResult, err := Compile(cfg, submissionID)
	if err != nil {
		return nil, err
	}

	r.Success()

	return &Program{cfg: cfg, submissionID: submissionID, compile: compileResult}, nil
}

// CompileResult returns the compile outcome captured at construction.
func (p *Program) CompileResult() *CompileResult {
	return p.compile
}

// Run executes the compiled program once against input.
func (p *Program) Run(input string) (*ExecutionResult, error) {
	return Execute(p.cfg, p.submissionID, input)
}

// Close removes the jail's mount points and then the jail itself,
// recursively. Cleanup is best-effort: failures are swallowed so they never
// mask the primary result, mirroring program.rs's Drop impl.
func (p *Program) Close() {
	jail := jailDir(p.cfg, p.submissionID)

	_ = os.Remove(filepath.Join(jail, "lib64"))
	_ = os.Remove(filepath.Join(jail, "lib"))
	_ = os.RemoveAll(jail)
}
