package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/metalagman/maimp/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new maimp project",
		Long:  "Initialize a new maimp project by creating the .maimp directory and installing a default config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			if err := initProject(workDir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "maimp initialized successfully")
			return nil
		},
	}
}

func initProject(workDir string) error {
	stateDir := filepath.Join(workDir, config.DefaultStateDir)
	log.Info().Str("dir", stateDir).Msg("creating maimp directory")
	if err := os.MkdirAll(filepath.Join(stateDir, "locks"), 0o755); err != nil {
		return fmt.Errorf("create locks dir: %w", err)
	}

	configPath := filepath.Join(workDir, config.DefaultConfigPath)
	if _, err := os.Stat(configPath); err == nil {
		log.Info().Msg("config.yaml already exists, skipping")
		return nil
	}
	log.Info().Str("path", configPath).Msg("installing default config")
	data, err := yaml.Marshal(config.DefaultSettings())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
