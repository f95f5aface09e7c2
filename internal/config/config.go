// Package config loads and validates magjudge's TOML configuration file.
//
// The layout mirrors the original source's config.rs: a [program] table of
// compile/execute knobs and a [server] table consumed by the external API
// layer. magjudge's core only reads [program]; [server] keys are parsed and
// kept so the same config.toml stays valid input for that external layer,
// which is out of scope for this repository.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root of config.toml.
type Config struct {
	Program Program `toml:"program"`
	Server  Server  `toml:"server"`
}

// Program holds every knob the judging core needs.
type Program struct {
	// SourceDir is where transient source files are written before compilation.
	SourceDir string `toml:"source_dir"`
	// ExecuteDir is where per-submission jails are built.
	ExecuteDir string `toml:"execute_dir"`
	// DependencyDir is passed to the compiler as its library search path.
	DependencyDir string `toml:"dependency_dir"`
	// CompileCommand is the external compiler's executable name, e.g. "rustc".
	CompileCommand string `toml:"compile_command"`
	// SourceExt is the extension given to the transient source file, e.g. "rs".
	SourceExt string `toml:"source_ext"`
	// CodegenOptions are passed through verbatim as "-C <opt>" pairs.
	CodegenOptions []string `toml:"codegen_options"`
	// Externs maps "--extern name=path" pairs.
	Externs map[string]string `toml:"externs"`
	// TimeLimitSeconds bounds each run via `timeout -s9`.
	TimeLimitSeconds uint64 `toml:"time_limit_seconds"`
	// KeepSubmissionTimeSeconds is the retention window before reaping.
	KeepSubmissionTimeSeconds uint64 `toml:"keep_submission_time_seconds"`
	// JudgeUID/JudgeGID are the uid/gid the launcher drops to.
	JudgeUID uint32 `toml:"judge_uid"`
	JudgeGID uint32 `toml:"judge_gid"`
	// CgroupTasksPaths are appended with the child PID after every run spawn.
	CgroupTasksPaths []string `toml:"cgroup_tasks_paths"`
	// LauncherPath is the path to the setuid safe-run helper, relative to CWD.
	LauncherPath string `toml:"launcher_path"`
}

// Server holds keys consumed only by the external API layer.
type Server struct {
	AddrPort    string            `toml:"addr_port"`
	SSLCertPath string            `toml:"ssl_cert_path"`
	SSLKeyPath  string            `toml:"ssl_key_path"`
	PublicFiles map[string]string `toml:"public_files"`
}

// Load reads and validates the TOML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read config file: %w", err)
	}

	cfg := Default()

	err = toml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse config file: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("Invalid config file: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with the same constants the
// original source baked in at compile time (SOURCE_DIR, EXECUTE_DIR,
// DEPENDENCY_DIR, TIME_LIMIT, JUDGE_UID/GID, the single memory cgroup path),
// so a minimal config.toml only needs to override what it cares about.
func Default() *Config {
	return &Config{
		Program: Program{
			SourceDir:                 "source",
			ExecuteDir:                "execute",
			DependencyDir:             "dependency",
			CompileCommand:            "rustc",
			SourceExt:                 "rs",
			TimeLimitSeconds:          10,
			KeepSubmissionTimeSeconds: 600,
			JudgeUID:                  1001,
			JudgeGID:                  1001,
			CgroupTasksPaths:          []string{"/sys/fs/cgroup/memory/judge/tasks"},
			LauncherPath:              "./safe-run",
		},
	}
}

// Validate reports the first configuration error found.
func (c *Config) Validate() error {
	if c.Program.SourceDir == "" {
		return fmt.Errorf("program.source_dir must not be empty")
	}

	if c.Program.ExecuteDir == "" {
		return fmt.Errorf("program.execute_dir must not be empty")
	}

	if c.Program.CompileCommand == "" {
		return fmt.Errorf("program.compile_command must not be empty")
	}

	if c.Program.TimeLimitSeconds == 0 {
		return fmt.Errorf("program.time_limit_seconds must be positive")
	}

	if c.Program.JudgeUID == 0 {
		return fmt.Errorf("program.judge_uid must not be root (0)")
	}

	if c.Program.LauncherPath == "" {
		return fmt.Errorf("program.launcher_path must not be empty")
	}

	return nil
}
