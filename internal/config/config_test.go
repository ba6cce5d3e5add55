package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wireform/wireform/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysOnlyDefinedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wireform.toml")
	require.NoError(t, os.WriteFile(path, []byte(`color = false`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "yaml", cfg.OutputEncoding)
	require.False(t, cfg.Color)
}

func TestLoadRejectsUnsupportedEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wireform.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output_encoding = "xml"`), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadNormalizesEncodingCase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wireform.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output_encoding = "JSON"`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.OutputEncoding)
}
