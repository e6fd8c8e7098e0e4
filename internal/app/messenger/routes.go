// Package messenger собирает HTTP-приложение: хранилище, кеш, брокер, сервисы и маршруты.
package messenger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/account-messenger/docs"
	"github.com/magabrotheeeer/account-messenger/internal/config"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/admin/broadcast"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/admin/createuser"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/admin/listusers"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/health"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/outbound/send"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/user/fetch"
	"github.com/magabrotheeeer/account-messenger/internal/http/handlers/user/reply"
	"github.com/magabrotheeeer/account-messenger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-messenger/internal/metrics"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
	"github.com/magabrotheeeer/account-messenger/internal/services/dispatch"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	accountsService *accounts.Service,
	dispatchService *dispatch.Service,
	checker health.Checker,
	m *metrics.Metrics,
	limits config.RateLimit,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		m.Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, limits.RPS, limits.Burst))

		r.Post("/login", login.New(logger, accountsService).ServeHTTP)

		// Панель администратора. Проверки прав нет: клиенты открывают её по флагу isAdmin.
		r.Post("/admin/create-user", createuser.New(logger, accountsService).ServeHTTP)
		r.Post("/admin/send-message", broadcast.New(logger, accountsService).ServeHTTP)
		r.Get("/admin/users", listusers.New(logger, accountsService).ServeHTTP)

		r.Post("/user/send-reply", reply.New(logger, accountsService).ServeHTTP)
		r.Get("/user/{username}", fetch.New(logger, accountsService).ServeHTTP)

		r.Post("/pesan", send.New(logger, dispatchService).ServeHTTP)
	})

	r.Get("/healthz", health.New(logger, checker).ServeHTTP)
	r.Handle("/metrics", m.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
