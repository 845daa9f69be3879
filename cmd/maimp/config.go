package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/metalagman/maimp/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// loadConfig merges defaults, the config file and MAIMP_* env into a Config.
// Relative paths are resolved against workDir.
func loadConfig(workDir string) (config.Config, error) {
	config.SetDefaults(viper.GetViper())

	path := viper.GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	switch _, err := os.Stat(path); {
	case err == nil:
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Debug().Str("path", path).Msg("config loaded")
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", path).Msg("no config file, using defaults")
	default:
		return config.Config{}, fmt.Errorf("stat config: %w", err)
	}

	settings := viper.AllSettings()
	delete(settings, "config")
	if err := config.ValidateSettings(settings); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Decode(settings)
	if err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Repository.Workspace = resolve(workDir, cfg.Repository.Workspace)
	cfg.Session.StateDir = resolve(workDir, cfg.Session.StateDir)
	cfg.Icons.OutputDir = resolve(workDir, cfg.Icons.OutputDir)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func resolve(workDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
