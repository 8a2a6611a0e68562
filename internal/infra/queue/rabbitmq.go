package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.leads"
	QueueName    = "q.lead-events"
	DLQName      = "q.lead-events.dlq"
	DLXName      = "ex.leads.dlx"
	RoutingKey   = "k.lead.created"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(user, pass, host, port string) (*RabbitMQ, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}

	if err := ch.QueueBind(DLQName, RoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	// Nacked events land in the DLQ instead of looping forever.
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return err
	}

	return ch.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil)
}
