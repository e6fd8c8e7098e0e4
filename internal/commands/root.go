// Package commands содержит команды CLI приложения.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/account-messenger/internal/config"
	"github.com/magabrotheeeer/account-messenger/internal/lib/logger"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "messenger",
	Short: "Accounts with expiry and an admin message feed",
	Long: `HTTP API for time-limited accounts: login, admin account creation,
broadcast messages and user replies, plus a terminal client.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			return os.Setenv("CONFIG_PATH", configPath)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (overrides CONFIG_PATH)")
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Env, os.Stdout), nil
}
