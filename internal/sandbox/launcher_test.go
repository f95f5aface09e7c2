package sandbox_test

import (
	"testing"

	"github.com/magurofly/magjudge/internal/sandbox"
)

func TestOptionsValidate(t *testing.T) {
	base := sandbox.Options{
		RootDir: "/tmp/jail",
		Program: "main",
		Argv:    []string{"main"},
		UID:     1001,
		GID:     1001,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}

	tests := []struct {
		name string
		mut  func(o sandbox.Options) sandbox.Options
	}{
		{"empty root dir", func(o sandbox.Options) sandbox.Options { o.RootDir = ""; return o }},
		{"empty program", func(o sandbox.Options) sandbox.Options { o.Program = ""; return o }},
		{"root uid", func(o sandbox.Options) sandbox.Options { o.UID = 0; return o }},
		{"root gid", func(o sandbox.Options) sandbox.Options { o.GID = 0; return o }},
		{"empty argv", func(o sandbox.Options) sandbox.Options { o.Argv = nil; return o }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.mut(base)
			if err := o.Validate(); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}
