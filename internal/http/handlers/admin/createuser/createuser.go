// Package createuser реализует HTTP-обработчик создания учётной записи администратором.
package createuser

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
	"github.com/magabrotheeeer/account-messenger/internal/models"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
)

// Request — данные новой учётной записи. ExpiryDays — срок действия в днях от текущего момента.
type Request struct {
	Username   string `json:"username" validate:"required,max=64" example:"bob"`
	Password   string `json:"password" validate:"required" example:"secret"`
	ExpiryDays *int   `json:"expiryDays" validate:"required,gte=0,lte=36500" example:"30"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	CreateUser(ctx context.Context, username, password string, expiryDays int) (models.UserView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание учётной записи
// @Description Создаёт обычного пользователя со сроком действия expiryDays дней.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные учётной записи"
// @Success 200 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/create-user [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.createuser"

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

	if _, err := h.service.CreateUser(r.Context(), req.Username, req.Password, *req.ExpiryDays); err != nil {
		if errors.Is(err, accounts.ErrUserExists) {
			log.Info("username already exists", sl.Username(req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Username already exists."))
			return
		}
		if errors.Is(err, accounts.ErrInvalidExpiry) {
			log.Info("expiry days out of range", slog.Int("expiry_days", *req.ExpiryDays))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Expiry days out of range."))
			return
		}
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("storage error"))
		return
	}

	log.Info("user created", sl.Username(req.Username), slog.Int("expiry_days", *req.ExpiryDays))
	render.JSON(w, r, response.OK("Account created successfully."))
}
