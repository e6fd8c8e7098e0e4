package rabbitmq

import "github.com/magabrotheeeer/account-messenger/internal/config"

// QueueConfig описывает очередь и ключ маршрутизации для привязки к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// OutboundQueues возвращает очереди для исходящих отправок.
func OutboundQueues(cfg config.RabbitMQ) []QueueConfig {
	return []QueueConfig{
		{QueueName: cfg.Queue, RoutingKey: cfg.RoutingKey},
	}
}
