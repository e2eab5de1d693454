package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension scripts need a POSIX shell")
	}
	tempDir := t.TempDir()

	script := `#!/bin/sh
echo "args=$*"
echo "` + EnvDataBackend + `=$` + EnvDataBackend + `"
echo "` + EnvDataPath + `=$` + EnvDataPath + `"
echo "` + EnvLogLevel + `=$` + EnvLogLevel + `"
exit 3
`
	if err := os.WriteFile(filepath.Join(tempDir, "mm-hello"), []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write mm-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ledger := filepath.Join(tempDir, "ledger.db")
	setGlobals(t, ledger, "sqlite")
	*verbose = true

	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatal("RunExtension() did not find mm-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	for _, want := range []string{
		"args=a b",
		EnvDataBackend + "=sqlite",
		EnvDataPath + "=" + ledger,
		EnvLogLevel + "=debug",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("extension output does not contain %q:\n%s", want, out.String())
		}
	}

	if found, _ := RunExtension("missing", nil); found {
		t.Error("RunExtension() found mm-missing")
	}
}
