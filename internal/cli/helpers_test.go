package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/coalcarbon/internal/cli"
	"github.com/rshade/coalcarbon/internal/config"
)

// setupHome points COALCARBON_HOME at a fresh directory with a config that
// skips the login delay, and resets global state afterwards.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvProjectDir, "")
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("version: 1.0.0\nauth:\n  login_delay: 0s\n  persist: true\n"), 0o600))

	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// runCLI executes the root command with args and returns combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	var in io.Reader = strings.NewReader(stdin)
	cmd.SetIn(in)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// loginDemo signs in with the built-in demo credential.
func loginDemo(t *testing.T) {
	t.Helper()
	out, err := runCLI(t, "sneha@2208\n", "login", "--username", "sneha", "--password-stdin")
	require.NoError(t, err, out)
}
