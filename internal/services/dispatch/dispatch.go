// Package dispatch принимает запросы на исходящую отправку сообщений.
//
// Сама доставка не выполняется: запрос записывается в лог и, если настроен
// брокер, передаётся в очередь для внешнего обработчика.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
)

var ErrTargetRequired = errors.New("target is required")

// DefaultMessageType подставляется, если тип сообщения не передан.
const DefaultMessageType = "text"

// Publisher передаёт принятую отправку во внешнюю систему.
type Publisher interface {
	Publish(ctx context.Context, d models.Dispatch) error
}

// Recorder получает события для метрик.
type Recorder interface {
	Dispatched(published bool)
}

// Service принимает запросы на отправку.
type Service struct {
	publisher Publisher
	metrics   Recorder
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт сервис. publisher и recorder могут быть nil.
func New(publisher Publisher, recorder Recorder, log *slog.Logger) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{
		publisher: publisher,
		metrics:   recorder,
		log:       log,
		now:       time.Now,
	}
}

// Send принимает отправку сообщения типа messageType адресату target.
// Ошибка публикации в очередь только логируется: запрос считается принятым.
func (s *Service) Send(ctx context.Context, target, messageType string) (models.Dispatch, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return models.Dispatch{}, ErrTargetRequired
	}
	messageType = strings.TrimSpace(messageType)
	if messageType == "" {
		messageType = DefaultMessageType
	}

	d := models.Dispatch{
		ID:          uuid.NewString(),
		Target:      target,
		MessageType: messageType,
		AcceptedAt:  s.now().UTC().Truncate(time.Millisecond),
	}

	log := s.log.With(
		slog.String("dispatch_id", d.ID),
		slog.String("target", d.Target),
		slog.String("message_type", d.MessageType),
	)
	log.Info("outbound message accepted")

	published := false
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, d); err != nil {
			log.Error("failed to publish outbound message", sl.Err(err))
		} else {
			published = true
		}
	}
	s.metrics.Dispatched(published)

	return d, nil
}

type noopRecorder struct{}

func (noopRecorder) Dispatched(bool) {}
