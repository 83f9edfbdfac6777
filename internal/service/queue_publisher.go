// Package service hosts background pieces that sit between the HTTP layer
// and external systems: the event publisher and the rating refresh job.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	q "github.com/sizzer/salon-booking/internal/queue"
)

// PublishAppointmentConfirmed publishes the event to the durable
// appointment.confirmed queue. Failures are logged and returned so the
// caller can ignore them; a broker outage must never fail the request.
func PublishAppointmentConfirmed(ctx context.Context, event q.AppointmentConfirmedEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		"appointment.confirmed",
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		"appointment.confirmed", // routing key = queue name
		false, false, pub,
	); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
