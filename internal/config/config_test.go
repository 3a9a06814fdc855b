package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcrest/crest/api"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crest.hcl")
	hcl := `
store_path = "/var/lib/crest/templates.db"
asset_dir  = "/srv/assets"
log_level  = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(hcl), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/crest/templates.db", cfg.StorePath)
	assert.Equal(t, "/srv/assets", cfg.AssetDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, api.DefaultExportAttrs(), cfg.ExportAttrs, "unset attrs fall back to the standard triple")
}

func TestLoadExportAttrsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crest.hcl")
	hcl := `
store_path   = "crest.db"
export_attrs = ["role"]
`
	require.NoError(t, os.WriteFile(path, []byte(hcl), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"role"}, cfg.ExportAttrs)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crest.hcl")
	require.NoError(t, os.WriteFile(path, []byte("store_path = "), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "crest.db", cfg.StorePath)
	assert.Equal(t, "info", cfg.LogLevel)
}
