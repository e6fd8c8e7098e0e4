// Package broadcast реализует HTTP-обработчик рассылки сообщения всем обычным пользователям.
package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-messenger/internal/http/response"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
)

// Request — текст рассылки.
type Request struct {
	Message string `json:"message" validate:"required" example:"Maintenance tonight"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Broadcast(ctx context.Context, text string) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Рассылка сообщения
// @Description Добавляет сообщение администратора в ленту каждого обычного пользователя.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст сообщения"
// @Success 200 {object} response.Response "Сообщение разослано"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/send-message [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.broadcast"

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

	n, err := h.service.Broadcast(r.Context(), req.Message)
	if err != nil {
		log.Error("failed to broadcast", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("storage error"))
		return
	}

	log.Info("broadcast delivered", slog.Int("recipients", n))
	render.JSON(w, r, response.OK("Message sent to all users."))
}
