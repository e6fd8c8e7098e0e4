// Package health реализует проверку доступности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-messenger/internal/http/response"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// Checker проверяет, что хранилище пользователей читается.
type Checker interface {
	View(ctx context.Context, fn func(users models.Users) error) error
}

type Handler struct {
	log     *slog.Logger
	checker Checker
}

func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.checker.View(r.Context(), func(models.Users) error { return nil }); err != nil {
		h.log.Error("health check failed", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage unavailable"))
		return
	}
	render.JSON(w, r, response.OK("ok"))
}
