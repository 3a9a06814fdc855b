// Package config loads the studio configuration file (crest.hcl).
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/teamcrest/crest/api"
)

// Config is the studio configuration. Zero values fall back to defaults
// after load.
type Config struct {
	// StorePath is the SQLite template database location.
	StorePath string `hcl:"store_path"`

	// AssetDir roots the logo/image asset filesystem. Empty disables
	// asset loading.
	AssetDir string `hcl:"asset_dir,optional"`

	// LogLevel is zap's level text: debug, info, warn, error.
	LogLevel string `hcl:"log_level,optional"`

	// ExportAttrs overrides the semantic attributes always included in
	// exported blobs. Leave unset for the standard triple.
	ExportAttrs []string `hcl:"export_attrs,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		StorePath:   "crest.db",
		LogLevel:    "info",
		ExportAttrs: api.DefaultExportAttrs(),
	}
}

// Load reads an HCL configuration file and fills unset fields with
// defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if cfg.StorePath == "" {
		cfg.StorePath = Default().StorePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if len(cfg.ExportAttrs) == 0 {
		cfg.ExportAttrs = api.DefaultExportAttrs()
	}
	return &cfg, nil
}
