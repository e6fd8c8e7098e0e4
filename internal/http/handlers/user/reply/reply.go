// Package reply реализует HTTP-обработчик ответа пользователя администратору.
package reply

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-messenger/internal/http/response"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
)

// Request — ответ пользователя.
type Request struct {
	Username string `json:"username" validate:"required" example:"user1"`
	Reply    string `json:"reply" validate:"required" example:"Thanks!"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Reply(ctx context.Context, username, text string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Ответ пользователя
// @Description Добавляет ответ в ленту пользователя и в ленту администратора.
// @Tags User
// @Accept  json
// @Produce  json
// @Param request body Request true "Ответ"
// @Success 200 {object} response.Response "Ответ отправлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/send-reply [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.reply"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Reply(r.Context(), req.Username, req.Reply); err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			log.Info("user not found", sl.Username(req.Username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found."))
			return
		}
		log.Error("failed to store reply", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("storage error"))
		return
	}

	log.Info("reply stored", sl.Username(req.Username))
	render.JSON(w, r, response.OK("Reply sent."))
}
