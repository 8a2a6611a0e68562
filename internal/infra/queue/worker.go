package queue

import (
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jatinenterprises/site-backend/internal/infra/mail"
)

// AcknowledgmentSender is the slice of the mail sender the worker needs.
type AcknowledgmentSender interface {
	SendAcknowledgment(to string, data mail.AcknowledgmentData) error
}

// Worker consumes lead-created events and thanks the visitor by email.
// It is fully decoupled from the database.
type Worker struct {
	Channel *amqp.Channel
	Sender  AcknowledgmentSender
}

func NewWorker(ch *amqp.Channel, sender AcknowledgmentSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual, so failures reach the DLQ)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[worker] failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] malformed event, rejecting: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.process(payload); err != nil {
				log.Printf("[worker] acknowledgment failed for %s: %s", payload.Email, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[worker] waiting for lead events on '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload LeadCreatedPayload) error {
	err := w.Sender.SendAcknowledgment(payload.Email, mail.AcknowledgmentData{
		Name:    payload.Name,
		Subject: payload.Subject,
	})

	// Relay not set up in this environment; drop the event rather than
	// cycling it through the DLQ.
	if errors.Is(err, mail.ErrNotConfigured) {
		log.Printf("[worker] relay not configured, skipping acknowledgment for %s", payload.Email)
		return nil
	}

	return err
}
