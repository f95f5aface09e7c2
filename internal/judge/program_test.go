package judge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magurofly/magjudge/internal/config"
)

func testProgramConfig(t *testing.T, compileCommand string) *config.Program {
	t.Helper()

	dir := t.TempDir()

	return &config.Program{
		SourceDir:      filepath.Join(dir, "source"),
		ExecuteDir:     filepath.Join(dir, "execute"),
		DependencyDir:  filepath.Join(dir, "dependency"),
		CompileCommand: compileCommand,
		SourceExt:      "rs",
	}
}

func TestNewProgramSuccessLeavesJailSourceGone(t *testing.T) {
	cfg := testProgramConfig(t, "true")

	p, err := NewProgram(cfg, "ok123", []byte("fn main() {}"))
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	defer p.Close()

	if p.CompileResult().Status != 0 {
		t.Fatalf("CompileResult().Status = %d, want 0", p.CompileResult().Status)
	}

	if _, err := os.Stat(sourcePath(cfg, "ok123")); !os.IsNotExist(err) {
		t.Fatalf("expected source file to be removed, stat err = %v", err)
	}

	jail := jailDir(cfg, "ok123")
	if _, err := os.Stat(jail); err != nil {
		t.Fatalf("expected jail directory to exist, stat err = %v", err)
	}

	for _, sub := range []string{"lib", "lib64"} {
		if _, err := os.Stat(filepath.Join(jail, sub)); err != nil {
			t.Fatalf("expected %s mount point to exist, stat err = %v", sub, err)
		}
	}
}

func TestNewProgramCompileFailureStillCleansSource(t *testing.T) {
	cfg := testProgramConfig(t, "false")

	p, err := NewProgram(cfg, "fails1", []byte("not valid"))
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	defer p.Close()

	if p.CompileResult().Status == 0 {
		t.Fatal("expected non-zero compile status")
	}

	if _, err := os.Stat(sourcePath(cfg, "fails1")); !os.IsNotExist(err) {
		t.Fatalf("expected source file to be removed even on compile failure, stat err = %v", err)
	}
}

func TestNewProgramInvalidIDRejected(t *testing.T) {
	cfg := testProgramConfig(t, "true")

	_, err := NewProgram(cfg, "../escape", []byte("x"))
	if err == nil {
		t.Fatal("expected error for path-unsafe submission id")
	}
}

func TestNewProgramMissingCompilerCleansJail(t *testing.T) {
	cfg := testProgramConfig(t, "/no/such/compiler-binary")

	_, err := NewProgram(cfg, "missingcompiler", []byte("x"))
	if err == nil {
		t.Fatal("expected system error when the compiler cannot be started")
	}

	if _, statErr := os.Stat(jailDir(cfg, "missingcompiler")); !os.IsNotExist(statErr) {
		t.Fatalf("expected jail directory to be cleaned up, stat err = %v", statErr)
	}
}

func TestCloseIsIdempotentAndBestEffort(t *testing.T) {
	cfg := testProgramConfig(t, "true")

	p, err := NewProgram(cfg, "closeme", []byte("x"))
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}

	p.Close()
	p.Close() // must not panic on an already-removed jail
}
