package commands

import (
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/account-messenger/internal/app/messenger"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		log.Info("starting messenger", slog.String("env", cfg.Env))
		log.Debug("config loaded", slog.String("config", cfg.String()))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := messenger.New(ctx, cfg, log)
		if err != nil {
			log.Error("failed to initialize app", sl.Err(err))
			return err
		}

		if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("app stopped with error", sl.Err(err))
			return err
		}

		log.Info("messenger stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
