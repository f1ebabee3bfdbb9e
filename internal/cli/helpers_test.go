package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/pflag"
)

// setupTestEnv isolates a test from any real config file and returns a fresh
// working directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	t.Setenv("PDFSPLIT_ROOT", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// resetFlags restores every root flag to its default. rootCmd is a package
// global, so flag values otherwise leak between Execute calls.
func resetFlags() {
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags()
	t.Cleanup(resetFlags)

	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return bufOut.String(), bufErr.String(), err
}
