package messenger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/account-messenger/internal/cache"
	"github.com/magabrotheeeer/account-messenger/internal/config"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/metrics"
	"github.com/magabrotheeeer/account-messenger/internal/rabbitmq"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
	"github.com/magabrotheeeer/account-messenger/internal/services/dispatch"
	"github.com/magabrotheeeer/account-messenger/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App — HTTP-сервер приложения со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	store     *storage.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New создаёт приложение. Redis и RabbitMQ подключаются, только если заданы их адреса.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "messenger.New"

	store, err := storage.New(cfg.Storage.UsersFile, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	seeded, err := store.EnsureSeeded(storage.BootstrapUsers(BootstrapOptions(cfg.Accounts), time.Now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if seeded {
		logger.Info("users store seeded", slog.String("path", store.Path()))
	}

	app := &App{
		logger: logger,
		store:  store,
	}

	var accountsCache accounts.Cache = cache.Noop{}
	if cfg.Redis.Address != "" {
		app.cache, err = cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		accountsCache = app.cache
		logger.Info("redis cache enabled", slog.String("address", cfg.Redis.Address))
	}

	var publisher dispatch.Publisher
	if cfg.RabbitMQ.URL != "" {
		if err := app.connectBroker(ctx, cfg.RabbitMQ); err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = app.publisher
		logger.Info("outbound dispatches are published", slog.String("exchange", cfg.RabbitMQ.Exchange))
	} else {
		logger.Info("rabbitmq is not configured, outbound dispatches are only logged")
	}

	m := metrics.New()
	accountsService := accounts.New(store, accountsCache, m, logger, accounts.Options{
		AdminUsername:        cfg.Accounts.AdminUsername,
		DefaultProfilePicURL: cfg.Accounts.DefaultProfilePicURL,
		CacheTTL:             cfg.Redis.TTL,
	})
	dispatchService := dispatch.New(publisher, m, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, accountsService, dispatchService, store, m, cfg.RateLimit)

	app.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

// BootstrapOptions переводит настройки учётных записей в параметры начального заполнения.
func BootstrapOptions(cfg config.Accounts) storage.BootstrapOptions {
	return storage.BootstrapOptions{
		AdminUsername:        cfg.AdminUsername,
		AdminPassword:        cfg.AdminPassword,
		AdminProfilePicURL:   cfg.AdminProfilePicURL,
		DefaultProfilePicURL: cfg.DefaultProfilePicURL,
		WithDemoUser:         cfg.SeedDemoUser,
	}
}

// Handler возвращает корневой обработчик.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) connectBroker(ctx context.Context, cfg config.RabbitMQ) error {
	conn, err := rabbitmq.Connect(ctx, cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.OutboundQueues(cfg))
	if err != nil {
		_ = conn.Close()
		return err
	}
	a.amqpConn = conn
	a.publisher = rabbitmq.NewPublisher(ch, cfg.Exchange, cfg.RoutingKey)
	return nil
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
}
