package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAdmin_StatsOnFreshDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "palabras.db")

	out, err := run(t, "stats", "--db", dbPath, "--log-level", "ERROR")
	require.NoError(t, err)
	assert.Contains(t, out, "level:        1")
	assert.Contains(t, out, "words:        0 (0 mastered)")
}

func TestAdmin_ExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "palabras.db")
	exportPath := filepath.Join(dir, "export.json")

	_, err := run(t, "export", "--db", dbPath, "--log-level", "ERROR", "-o", exportPath)
	require.NoError(t, err)
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"userData"`)

	out, err := run(t, "import", exportPath, "--db", dbPath, "--log-level", "ERROR")
	require.NoError(t, err)
	assert.Contains(t, out, "imported")
}

func TestAdmin_ImportRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))

	_, err := run(t, "import", bad, "--db", filepath.Join(dir, "palabras.db"), "--log-level", "ERROR")
	assert.Error(t, err)
}

func TestAdmin_ResetRequiresConfirmation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "palabras.db")

	_, err := run(t, "reset", "--db", dbPath, "--log-level", "ERROR")
	assert.Error(t, err)

	out, err := run(t, "reset", "--yes", "--db", dbPath, "--log-level", "ERROR")
	require.NoError(t, err)
	assert.Contains(t, out, "progress reset")
}

func TestAdmin_BackupWritesFile(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")

	out, err := run(t, "backup", "--dir", backups, "--keep", "2", "--db", filepath.Join(dir, "palabras.db"), "--log-level", "ERROR")
	require.NoError(t, err)
	entries, err := os.ReadDir(backups)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, out, entries[0].Name())
}
