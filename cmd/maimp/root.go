package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/metalagman/maimp/internal/config"
	"github.com/metalagman/maimp/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	debug     bool
	logFormat string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "maimp",
		Short:         "maimp runs simulated multi-agent analysis sessions",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(debug, logFormat)
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath, "config file path")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format: console or json")
	cmd.AddCommand(initCmd())
	cmd.AddCommand(sessionCmd())
	cmd.AddCommand(sessionsCmd())
	cmd.AddCommand(iconsCmd())
	cmd.AddCommand(uiCmd())
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	cobra.OnInitialize(initConfig)
	rootCmd := newRootCmd()
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	return rootCmd.ExecuteContext(ctx)
}

func initConfig() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg("failed to load .env")
		}
	}
	viper.SetEnvPrefix("MAIMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
