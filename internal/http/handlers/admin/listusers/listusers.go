// Package listusers реализует HTTP-обработчик выдачи всей таблицы пользователей.
//
// Ответ повторяет содержимое хранилища без фильтрации, включая пароли.
// Клиенты панели администратора полагаются на этот формат.
package listusers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-messenger/internal/http/response"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListUsers(ctx context.Context) (models.Users, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает всю таблицу пользователей как есть, вместе с паролями.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]models.User "Таблица пользователей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listusers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("storage error"))
		return
	}

	log.Info("users listed", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
