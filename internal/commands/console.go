package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/account-messenger/internal/client/api"
	"github.com/magabrotheeeer/account-messenger/internal/client/console"
	"github.com/magabrotheeeer/account-messenger/internal/config"
)

var serverURL string

// consoleCmd запускает терминальный клиент.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive terminal client for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if serverURL == "" {
			serverURL = fmt.Sprintf("http://localhost:%s", cfg.HTTPServer.Port)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := api.New(serverURL, nil)
		return console.New(client, os.Stdin, cmd.OutOrStdout(), cfg.Accounts.AdminUsername).Run(ctx)
	},
}

func init() {
	consoleCmd.Flags().StringVar(&serverURL, "server", "", "API base URL (default http://localhost:$PORT)")
	rootCmd.AddCommand(consoleCmd)
}
