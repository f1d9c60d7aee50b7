package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/ddtabs/internal/surface"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func workspace(t *testing.T, names ...string) (root, cfg, db string) {
	t.Helper()
	root = t.TempDir()
	for _, n := range names {
		require.NoError(t, os.Mkdir(filepath.Join(root, n), 0o755))
	}
	dir := t.TempDir()
	return root, filepath.Join(dir, "config.json"), filepath.Join(dir, "ddtabs.db")
}

func decodeState(t *testing.T, s string) surface.State {
	t.Helper()
	var st surface.State
	require.NoError(t, json.Unmarshal([]byte(s), &st))
	return st
}

func stateCaptions(st surface.State) []string {
	var out []string
	for _, tab := range st.Tabs {
		out = append(out, tab.Caption)
	}
	return out
}

func TestStateCommand(t *testing.T) {
	root, cfg, db := workspace(t, "b", "a")
	out, _, err := run(t, "state", root, "--config", cfg, "--db", db, "--indent", "")
	require.NoError(t, err)

	st := decodeState(t, out)
	assert.Equal(t, []string{"a", "b"}, stateCaptions(st))
	assert.Equal(t, 0.2, st.DropRatio)
	assert.NotNil(t, st.AcceptCriterion)
	assert.FileExists(t, cfg, "defaults are written on first run")
}

func TestDropCommandPersists(t *testing.T) {
	root, cfg, db := workspace(t, "a", "b", "c")

	out, errOut, err := run(t, "drop", root, "--config", cfg, "--db", db, "--index", "2", "--target", "a", "--vpos", "0")
	require.NoError(t, err)
	assert.Contains(t, errOut, "decision: insert-before")
	assert.Equal(t, []string{"c", "a", "b"}, stateCaptions(decodeState(t, out)))

	out, _, err = run(t, "state", root, "--config", cfg, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, stateCaptions(decodeState(t, out)))
}

func TestDropCommandUnknownTarget(t *testing.T) {
	root, cfg, _ := workspace(t, "a")
	_, _, err := run(t, "drop", root, "--config", cfg, "--db", "-", "--target", "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tab")
}

func TestStateCommandMissingDir(t *testing.T) {
	_, cfg, _ := workspace(t)
	_, _, err := run(t, "state", filepath.Join(t.TempDir(), "missing"), "--config", cfg, "--db", "-")
	require.Error(t, err)
}

func TestConfigGenerate(t *testing.T) {
	_, cfg, _ := workspace(t)

	out, _, err := run(t, "config", "generate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default config")
	assert.NotContains(t, out, "Backed up")

	out, _, err = run(t, "config", "generate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up existing config")

	out, _, err = run(t, "config", "path", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg+"\n", out)
}
