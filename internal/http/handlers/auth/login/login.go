// Package login реализует HTTP-обработчик входа в учётную запись.
//
// Обработчик декодирует и валидирует учётные данные, делегирует проверку
// сервису учётных записей и возвращает данные пользователя без пароля.
// Неверное имя и неверный пароль дают одинаковый ответ 401, истёкший срок
// действия учётной записи даёт 403.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-messenger/internal/http/response"
	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
)

// Request — учётные данные пользователя.
type Request struct {
	Username string `json:"username" validate:"required" example:"user1"`
	Password string `json:"password" validate:"required" example:"pass1"`
}

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, username, password string) (models.UserView, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход в учётную запись
// @Description Проверяет имя, пароль и срок действия учётной записи. Пароль в ответ не попадает.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Срок действия учётной записи истёк"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
	log.Debug("request body decoded", sl.Username(req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var expired *accounts.ExpiredError
		switch {
		case errors.Is(err, accounts.ErrInvalidCredentials):
			log.Info("invalid credentials", sl.Username(req.Username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid username or password."))
		case errors.As(err, &expired):
			log.Info("account expired", sl.Username(req.Username), slog.Time("expiry", expired.Expiry))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(fmt.Sprintf(
				"Your account expired on %s. Please contact the admin to reactivate it.",
				expired.Expiry.UTC().Format(accounts.ExpiryDateLayout),
			)))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("storage error"))
		}
		return
	}

	log.Info("login success", sl.Username(req.Username), slog.Bool("is_admin", user.IsAdmin))
	render.JSON(w, r, response.OKWithUser("Login successful!", user))
}
