package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment passed to extensions, the same variables mm reads its
// configuration from.
const (
	EnvConfig      = "MM_CONFIG"
	EnvDataBackend = "MM_DATA_BACKEND"
	EnvDataPath    = "MM_DATA_PATH"
	EnvLogLevel    = "MM_LOG_LEVEL"
	EnvToday       = "MM_TODAY"
)

// RunExtension attempts to find and execute an external mm-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "mm-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	c, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// the extension sees the effective configuration.
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env,
		EnvConfig+"="+*configFile,
		EnvDataBackend+"="+c.Data.Backend,
		EnvDataPath+"="+c.Data.Path,
		EnvLogLevel+"="+c.Log.Level,
		EnvToday+"="+c.Today,
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
