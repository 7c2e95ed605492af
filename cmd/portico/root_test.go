package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portico.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestDraftCommands_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "drafts.db")
	cfg := writeConfig(t, "log_level: error\nstore:\n  driver: sqlite\n  path: "+db+"\n")

	require.NoError(t, run("--config", cfg, "draft", "ls"))
	require.NoError(t, run("--config", cfg, "draft", "prune", "--older-than", "1h"))
	assert.Error(t, run("--config", cfg, "draft", "inspect", "missing"))
}

func TestDraftPrune_RequiresSQLite(t *testing.T) {
	cfg := writeConfig(t, "store:\n  driver: memory\n")
	err := run("--config", cfg, "--store", "memory", "draft", "prune")
	assert.ErrorContains(t, err, "sqlite")
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	cfg := writeConfig(t, "listen: :9090\n")
	err := run("--config", cfg, "--store", "floppy", "draft", "ls")
	assert.ErrorContains(t, err, "floppy")
}

func TestFormValidate(t *testing.T) {
	good := filepath.Join(t.TempDir(), "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
id: newsletter
steps:
  - title: Subscribe
    fields:
      - name: email
        label: Email
        kind: email
        required: true
`), 0o644))
	assert.NoError(t, run("form", "validate", good))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("id: broken\nsteps: []\n"), 0o644))
	assert.ErrorContains(t, run("form", "validate", bad), "at least one step")
}

func TestFormGraph(t *testing.T) {
	cfg := writeConfig(t, "log_level: error\nstore:\n  driver: memory\n")
	assert.NoError(t, run("--config", cfg, "--store", "memory", "form", "graph"))
}
