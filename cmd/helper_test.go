package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// setGlobals points the global flags to a ledger in path, isolated from the
// user configuration, and restores them at the end of the test.
func setGlobals(t *testing.T, path, backend string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("MM_TODAY", "2025-03-20")

	saved := []any{*configFile, *dataPath, *dataBackend, *verbose, *rawOutput}
	t.Cleanup(func() {
		*configFile = saved[0].(string)
		*dataPath = saved[1].(string)
		*dataBackend = saved[2].(string)
		*verbose = saved[3].(bool)
		*rawOutput = saved[4].(bool)
	})
	*configFile, *dataPath, *dataBackend, *verbose, *rawOutput = "", path, backend, false, true
}

// run executes mm with args and returns what it printed.
func run(t *testing.T, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	f := flag.NewFlagSet("mm", flag.ContinueOnError)
	commander := subcommands.NewCommander(f, "mm")
	Register(commander)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()
	status := commander.Execute(context.Background())
	return out.String(), status
}

// mustRun is like run but fails the test unless the command succeeds.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, status := run(t, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("mm %v exited with %v, output:\n%s", args, status, out)
	}
	return out
}
