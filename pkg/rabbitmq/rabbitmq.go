package rabbitmq

import (
	"encoding/json"
	"fmt"

	amqp "github.com/streadway/amqp"
)

// ExchangeName is the durable fanout exchange all product events go to.
// Fanout delivery ignores the routing key, but one is still set so consumers
// bound through direct/topic exchanges can filter on it.
const ExchangeName = "produits"

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Publisher publishes product events to the broker. Each call opens a fresh
// connection and closes it afterwards: delivery is fire-and-forget, with no
// retry and no confirm wait. Callers are expected to log a failure and move
// on rather than surface it.
type Publisher struct {
	cfg Config
}

// NewPublisher creates a new Publisher for the given broker URL.
func NewPublisher(cfg Config) *Publisher {
	return &Publisher{cfg: cfg}
}

// Publish serializes payload to JSON and publishes it to the "produits"
// fanout exchange with routing key "product.<suffix>". The exchange is
// declared durable on every call so the first publish after a broker restart
// recreates it.
func (p *Publisher) Publish(routingKeySuffix string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}

	err = ch.Publish(
		ExchangeName,
		"product."+routingKeySuffix,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
