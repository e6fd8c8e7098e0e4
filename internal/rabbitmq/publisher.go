package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// PublishMessage публикует message в формате JSON.
func PublishMessage(ch *amqp.Channel, exchange, routingKey string, message any, messageID string) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher передаёт принятые отправки в exchange.
// amqp.Channel не безопасен для параллельной публикации, поэтому вызовы сериализуются.
type Publisher struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string

	mu sync.Mutex
}

// NewPublisher создаёт Publisher поверх уже настроенного канала.
func NewPublisher(ch *amqp.Channel, exchange, routingKey string) *Publisher {
	return &Publisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

// Publish отправляет d в очередь.
func (p *Publisher) Publish(ctx context.Context, d models.Dispatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return PublishMessage(p.ch, p.exchange, p.routingKey, d, d.ID)
}

// Close закрывает канал.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
