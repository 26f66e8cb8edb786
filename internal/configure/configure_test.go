package configure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHook(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "axconfig.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body), 0755))
	return script
}

func TestRun_PassesExactlyOneArgument(t *testing.T) {
	recorded := filepath.Join(t.TempDir(), "args.txt")
	script := writeHook(t, `echo "$# $1" > `+recorded+"\n")

	runner := NewRunner(script)
	require.NoError(t, runner.Run("/work/deps/ax"))

	data, err := os.ReadFile(recorded)
	require.NoError(t, err)
	assert.Equal(t, "1 /work/deps/ax\n", string(data))
}

func TestRun_SurfacesHookFailure(t *testing.T) {
	script := writeHook(t, "echo broken >&2\nexit 3\n")

	runner := NewRunner(script)
	err := runner.Run("/work/deps/ax")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRun_NoScriptConfigured(t *testing.T) {
	runner := NewRunner("")
	assert.NoError(t, runner.Run("/work/deps/ax"))
}

func TestExists(t *testing.T) {
	assert.False(t, NewRunner("").Exists())
	assert.False(t, NewRunner(filepath.Join(t.TempDir(), "missing.sh")).Exists())
	assert.True(t, NewRunner(writeHook(t, "exit 0\n")).Exists())
}
