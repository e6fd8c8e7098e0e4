package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
)

// maxInFlight — сколько сообщений обрабатывается одновременно.
const maxInFlight = 10

// ConsumeMessages читает очередь queueName и передаёт тело каждого сообщения handler.
// Ошибка handler возвращает сообщение в очередь. Параллельно обрабатывается не больше maxInFlight сообщений.
// Возвращается после закрытия канала доставки или отмены ctx, дождавшись запущенных обработчиков.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumeMessages"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	handleDeliveries(ctx, delivery, log, handler)
	return nil
}

func handleDeliveries(ctx context.Context, delivery <-chan amqp.Delivery, log *slog.Logger, handler func([]byte) error) {
	var wg sync.WaitGroup
	defer wg.Wait()

	sem := make(chan struct{}, maxInFlight)
	for {
		select {
		case d, ok := <-delivery:
			if !ok {
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				if err := d.Nack(false, true); err != nil {
					log.Error("failed to nack message", sl.Err(err))
				}
				return
			}
			wg.Add(1)
			go func(d amqp.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				handleDelivery(d, log, handler)
			}(d)
		case <-ctx.Done():
			return
		}
	}
}

func handleDelivery(d amqp.Delivery, log *slog.Logger, handler func([]byte) error) {
	if err := handler(d.Body); err != nil {
		log.Error("failed to handle message", slog.String("message_id", d.MessageId), sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
