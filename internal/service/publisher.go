package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	q "github.com/iliyamo/cricket-ticket-booking/internal/queue"
)

// EventPublisher publishes booking events.  Failures are reported to the
// caller, which is free to ignore them; a booking never fails because the
// broker is down.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error
}

// AMQPPublisher publishes to RabbitMQ, dialing a fresh connection per
// event.  Bookings are rare enough that pooling is not worth the state.
type AMQPPublisher struct {
	URL    string
	Logger logrus.FieldLogger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Logger: logger}
}

// PublishBookingConfirmed sends event to the booking.confirmed queue as a
// persistent JSON message.
func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
	log := p.Logger.WithField("booking_ref", event.BookingRef)

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Declaring is idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warn("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.BookingConfirmedQueue, false, false, pub); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}
