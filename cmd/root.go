package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teamcrest/crest/internal/assets"
	"github.com/teamcrest/crest/internal/config"
	"github.com/teamcrest/crest/internal/session"
	"github.com/teamcrest/crest/internal/store"
)

var (
	cfgPath   string
	storePath string
	assetDir  string
	logLevel  string

	cfg    *config.Config
	logger *zap.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to crest.hcl")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Template database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&assetDir, "assets", "", "Asset directory for logos (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

var rootCmd = &cobra.Command{
	Use:           "crest",
	Short:         "Crest: parametrized team graphics templates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		if storePath != "" {
			cfg.StorePath = storePath
		}
		if assetDir != "" {
			cfg.AssetDir = assetDir
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
		}
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync() // best-effort flush
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the configured template database.
func openStore() (*store.Store, error) {
	return store.Open(cfg.StorePath, logger)
}

// sessionOptions assembles the collaborators a session needs from the
// resolved configuration.
func sessionOptions(st *store.Store) session.Options {
	opts := session.Options{
		Store:       st,
		ExportAttrs: cfg.ExportAttrs,
		Log:         logger,
	}
	if cfg.AssetDir != "" {
		opts.Assets = assets.NewDir(cfg.AssetDir)
	}
	return opts
}
