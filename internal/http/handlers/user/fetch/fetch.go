// Package fetch реализует HTTP-обработчик получения данных одного пользователя.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-messenger/internal/http/response"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	GetUser(ctx context.Context, username string) (models.UserView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Данные пользователя
// @Description Возвращает пользователя без пароля вместе с лентой сообщений.
// @Tags User
// @Produce  json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response "Пользователь"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.fetch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if username == "" {
		log.Error("empty username in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username is required"))
		return
	}

	user, err := h.service.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			log.Info("user not found", sl.Username(username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found."))
			return
		}
		log.Error("failed to fetch user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("storage error"))
		return
	}

	render.JSON(w, r, response.OKWithUser("", user))
}
