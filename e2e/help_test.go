//go:build e2e && unix

package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runOnce runs the binary outside the pty for commands that print and exit
func runOnce(t *testing.T, args ...string) string {
	t.Helper()
	out, err := exec.Command(binPath, args...).CombinedOutput()
	require.NoError(t, err, "typeahead %v failed:\n%s", args, out)
	return string(out)
}

func TestHelpListsFlagsAndCommands(t *testing.T) {
	t.Parallel()

	out := runOnce(t, "--help")
	for _, want := range []string{"Usage", "--endpoint", "--debounce", "--listen", "serve", "config", "catalog"} {
		assert.Contains(t, out, want)
	}
}

func TestCatalogHelp(t *testing.T) {
	t.Parallel()

	out := runOnce(t, "catalog", "--help")
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "add")
}

func TestVersionIsStamped(t *testing.T) {
	t.Parallel()

	assert.Contains(t, runOnce(t, "--version"), e2eVersion)
}
