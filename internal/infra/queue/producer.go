package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadCreatedPayload is published after a lead lands in the store.
// Downstream consumers (acknowledgment worker today) pick it up.
type LeadCreatedPayload struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadCreated(ctx context.Context, payload LeadCreatedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("publishing lead event: %w", err)
	}

	return nil
}
