package judge

import (
	"testing"

	"github.com/magurofly/magjudge/internal/config"
)

func TestCompileArgsOrderedExterns(t *testing.T) {
	cfg := &config.Program{
		ExecuteDir:     "execute",
		DependencyDir:  "dependency",
		SourceExt:      "rs",
		CodegenOptions: []string{"opt-level=3"},
		Externs: map[string]string{
			"zeta":  "/lib/zeta.rlib",
			"alpha": "/lib/alpha.rlib",
		},
	}

	args := compileArgs(cfg, "sub1")

	want := []string{
		"--crate-name=main",
		"--edition=2018",
		"--error-format=json",
		"--json=diagnostic-short",
		"--crate-type=bin",
		"--emit=link",
		"-C", "opt-level=3",
		"--extern=alpha=/lib/alpha.rlib",
		"--extern=zeta=/lib/zeta.rlib",
		"--out-dir=execute/sub1",
		"-L", "dependency=dependency",
		sourcePath(cfg, "sub1"),
	}

	if len(args) != len(want) {
		t.Fatalf("compileArgs() = %v, want %v", args, want)
	}

	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("compileArgs()[%d] = %q, want %q (full: %v)", i, args[i], want[i], args)
		}
	}
}

func TestCompileSuccessAndFailureStatuses(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Program{
		SourceDir:     dir,
		ExecuteDir:    dir,
		DependencyDir: dir,
		SourceExt:     "rs",
	}

	err := saveSource(cfg, "sub2", []byte("irrelevant"))
	if err != nil {
		t.Fatalf("saveSource() error = %v", err)
	}

	cfg.CompileCommand = "true"

	result, err := Compile(cfg, "sub2")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if result.Status != 0 {
		t.Fatalf("Status = %d, want 0", result.Status)
	}

	cfg.CompileCommand = "false"

	result, err = Compile(cfg, "sub2")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if result.Status == 0 {
		t.Fatal("expected non-zero status from a failing compiler")
	}
}

func TestCompileMissingBinaryIsSystemError(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Program{
		SourceDir:      dir,
		ExecuteDir:     dir,
		DependencyDir:  dir,
		SourceExt:      "rs",
		CompileCommand: "/no/such/compiler-binary",
	}

	err := saveSource(cfg, "sub3", []byte("irrelevant"))
	if err != nil {
		t.Fatalf("saveSource() error = %v", err)
	}

	_, err = Compile(cfg, "sub3")
	if err == nil {
		t.Fatal("expected error when the compiler binary does not exist")
	}

	var judgeErr *Error
	if !asJudgeError(err, &judgeErr) {
		t.Fatalf("error is not a *judge.Error: %v", err)
	}

	if judgeErr.Kind != KindSystemError {
		t.Fatalf("Kind = %v, want KindSystemError", judgeErr.Kind)
	}
}

func asJudgeError(err error, target **Error) bool {
	judgeErr, ok := err.(*Error)
	if ok {
		*target = judgeErr
	}

	return ok
}
