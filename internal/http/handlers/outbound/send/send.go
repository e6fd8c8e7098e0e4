// Package send реализует HTTP-обработчик исходящей отправки сообщения.
//
// Доставка не выполняется: запрос принимается, записывается в лог и при
// настроенном брокере передаётся в очередь. Ответ всегда успешный, если
// указан адресат.
package send

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
	"github.com/magabrotheeeer/account-messenger/internal/services/dispatch"
)

// Request — адресат и тип сообщения.
// PesanType и BugType принимаются как старые имена поля MessageType.
type Request struct {
	Target      string `json:"target" validate:"max=256" example:"+628123456789"`
	MessageType string `json:"messageType,omitempty" validate:"max=128" example:"promo"`
	PesanType   string `json:"pesanType,omitempty" validate:"max=128" swaggerignore:"true"`
	BugType     string `json:"bugType,omitempty" validate:"max=128" swaggerignore:"true"`
}

// Type возвращает тип сообщения с учётом старых имён поля.
func (r Request) Type() string {
	switch {
	case r.MessageType != "":
		return r.MessageType
	case r.PesanType != "":
		return r.PesanType
	default:
		return r.BugType
	}
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Send(ctx context.Context, target, messageType string) (models.Dispatch, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Исходящая отправка
// @Description Принимает запрос на отправку сообщения адресату. Доставка не гарантируется.
// @Tags Outbound
// @Accept  json
// @Produce  json
// @Param request body Request true "Адресат и тип сообщения"
// @Success 200 {object} response.Response "Запрос принят"
// @Failure 400 {object} response.ErrorResponse "Не указан адресат"
// @Router /pesan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.outbound.send"

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

	d, err := h.service.Send(r.Context(), req.Target, req.Type())
	if err != nil {
		if errors.Is(err, dispatch.ErrTargetRequired) {
			log.Info("target is missing")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Target is required."))
			return
		}
		log.Error("failed to accept dispatch", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to send message"))
		return
	}

	render.JSON(w, r, response.OK(fmt.Sprintf("Message '%s' sent to %s", d.MessageType, d.Target)))
}
