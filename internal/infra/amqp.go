// README: RabbitMQ connection initialization for the payment event stream.
package infra

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

func NewAMQP(url string) (*amqp.Connection, error) {
	return amqp.Dial(url)
}
