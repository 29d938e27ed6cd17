package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Database.Path = "ledger.db"
	cfg.Watch.Schedule = "@every 30s"

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ledger.db", loaded.Database.Path)
	assert.Equal(t, "Upload", loaded.Folders.Upload)
	assert.Equal(t, "@every 30s", loaded.Watch.Schedule)
	assert.Equal(t, "info", loaded.Log.Level)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("database: [not a map"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, Default()))

	t.Setenv("SPENDTRACK_DB", "/tmp/other.db")
	t.Setenv("SPENDTRACK_UPLOAD", "/tmp/uploads")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/uploads", cfg.Folders.Upload)
}

func TestPathResolution(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/proj", "spendtrack.db"), cfg.DatabasePath("/proj"))
	assert.Equal(t, filepath.Join("/proj", "Upload"), cfg.UploadDir("/proj"))
	assert.Equal(t, filepath.Join("/proj", "Users"), cfg.UsersDir("/proj"))

	cfg.Database.Path = "/abs/ledger.db"
	assert.Equal(t, "/abs/ledger.db", cfg.DatabasePath("/proj"))
}
