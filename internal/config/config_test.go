package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// isolatedPaths points the config root at an empty temp dir and runs the test
// from another empty dir so no real config file is picked up.
func isolatedPaths(t *testing.T) *Paths {
	t.Helper()
	root := t.TempDir()
	t.Setenv("PDFSPLIT_ROOT", root)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths failed: %v", err)
	}
	return paths
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyOutputDir, ".", "")
	flags.String(KeyOutputBasename, "output", "")
	flags.String(KeyEmptyParts, "emit", "")
	flags.String(KeyLogLevel, "info", "")
	return flags
}

func TestDefaultPaths(t *testing.T) {
	t.Run("respects PDFSPLIT_ROOT", func(t *testing.T) {
		t.Setenv("PDFSPLIT_ROOT", "/custom/pdfsplit")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}
		if paths.Root != "/custom/pdfsplit" {
			t.Errorf("Root = %s", paths.Root)
		}
		if paths.Config != filepath.Join("/custom/pdfsplit", "config.yaml") {
			t.Errorf("Config = %s", paths.Config)
		}
	})

	t.Run("defaults to home directory", func(t *testing.T) {
		t.Setenv("PDFSPLIT_ROOT", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}
		if filepath.Base(paths.Root) != ".pdfsplit" {
			t.Errorf("Root should end with .pdfsplit, got: %s", paths.Root)
		}
	})

	t.Run("local config comes first", func(t *testing.T) {
		paths := &Paths{Root: "/r", Config: "/r/config.yaml"}
		got := paths.ConfigCandidates()
		if len(got) != 2 || got[0] != LocalConfigName || got[1] != "/r/config.yaml" {
			t.Errorf("ConfigCandidates() = %v", got)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	paths := isolatedPaths(t)

	cfg, err := Load("", paths, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_Precedence(t *testing.T) {
	paths := isolatedPaths(t)
	writeConfig(t, paths.Root, "config.yaml", "output-dir: from-file\nlog-level: debug\nempty-parts: reject\n")

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load("", paths, newFlags())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.OutputDir != "from-file" || cfg.LogLevel != "debug" || cfg.EmptyParts != "reject" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.File != paths.Config {
			t.Errorf("File = %q, want %q", cfg.File, paths.Config)
		}
	})

	t.Run("local file wins over root file", func(t *testing.T) {
		writeConfig(t, ".", LocalConfigName, "output-dir: local\n")
		defer os.Remove(LocalConfigName)

		cfg, err := Load("", paths, nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.OutputDir != "local" {
			t.Errorf("OutputDir = %q, want local", cfg.OutputDir)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PDFSPLIT_OUTPUT_DIR", "from-env")

		cfg, err := Load("", paths, newFlags())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.OutputDir != "from-env" {
			t.Errorf("OutputDir = %q, want from-env", cfg.OutputDir)
		}
	})

	t.Run("changed flag overrides env", func(t *testing.T) {
		t.Setenv("PDFSPLIT_OUTPUT_DIR", "from-env")
		flags := newFlags()
		if err := flags.Parse([]string{"--output-dir", "from-flag"}); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		cfg, err := Load("", paths, flags)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.OutputDir != "from-flag" {
			t.Errorf("OutputDir = %q, want from-flag", cfg.OutputDir)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("unchanged flag should not override file, LogLevel = %q", cfg.LogLevel)
		}
	})
}

func TestLoad_Errors(t *testing.T) {
	paths := isolatedPaths(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad empty-parts", "empty-parts: skip\n"},
		{"bad log level", "log-level: loud\n"},
		{"bad output format", "output: xml\n"},
		{"empty basename", "output-basename: \"\"\n"},
		{"basename with separator", "output-basename: a/b\n"},
		{"malformed yaml", "output-dir: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "cfg.yaml", tt.body)
			_, err := Load(path, paths, nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), paths, nil)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLoad_NormalizesLogLevel(t *testing.T) {
	paths := isolatedPaths(t)
	t.Setenv("PDFSPLIT_LOG_LEVEL", "WARN")

	cfg, err := Load("", paths, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}
