//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Run directly, not through a PTY, since it exits quickly
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage: ghsearch")
	require.Contains(t, output, "--api-url")
	require.Contains(t, output, "--config")
	require.Contains(t, output, "--debounce")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--version").CombinedOutput()
	require.NoError(t, err)
	require.Contains(t, string(out), "ghsearch version")
}

func TestUnknownFlagFails(t *testing.T) {
	t.Parallel()

	err := exec.Command(binPath, "--no-such-flag").Run()
	require.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, err := exec.Command(binPath, "--config", path, "--api-url", "http://127.0.0.1:1", "--write-config").CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "http://127.0.0.1:1")
	require.Contains(t, string(data), "500ms")
}

func TestApplicationExit(t *testing.T) {
	t.Parallel()

	for _, key := range []struct {
		name string
		seq  string
	}{
		{"esc", KeyEsc},
		{"ctrl+c", KeyCtrlC},
	} {
		t.Run(key.name, func(t *testing.T) {
			tf := NewTUITest(t)
			defer tf.Cleanup()

			require.NoError(t, tf.StartApp())
			require.True(t, tf.Ready(), "Should render the first frame")
			require.True(t, tf.SeePlain("ghsearch"), "Should show the title")

			require.NoError(t, tf.SendKeys(key.seq))
			require.NoError(t, tf.WaitExit(3*time.Second))
		})
	}
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	// Focus the list so ? is not typed into the search box
	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys("?"))
	require.True(t, tf.SeePlain("ghsearch Help"), "Should show help in the pager")
	require.NoError(t, tf.SendKeys("q"))

	require.NoError(t, tf.SendKeys("q"))
	require.NoError(t, tf.WaitExit(3*time.Second))
}
