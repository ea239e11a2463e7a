package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the durable queue all domain events go to.
const QueueName = "icplearn.events"

// RabbitMQ is a Publisher over an AMQP connection.
type RabbitMQ struct {
	url     string
	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// NewRabbitMQ connects to the broker and declares the events queue.
func NewRabbitMQ(amqpURL string) (*RabbitMQ, error) {
	r := &RabbitMQ{url: amqpURL}
	if err := r.connect(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RabbitMQ) connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	r.conn, err = amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	r.channel, err = r.conn.Channel()
	if err != nil {
		r.conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	_, err = r.channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		r.channel.Close()
		r.conn.Close()
		return fmt.Errorf("declare events queue: %w", err)
	}

	slog.Info("connected to RabbitMQ", "url", sanitizeURL(r.url))
	return nil
}

// Publish sends one event as a persistent JSON message.
func (r *RabbitMQ) Publish(ctx context.Context, evt Event) error {
	r.mu.RLock()
	ch := r.channel
	closed := r.closed
	r.mu.RUnlock()

	if closed || ch == nil {
		return fmt.Errorf("publisher closed")
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		"",        // default exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.ID,
			Type:         evt.Type,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "amqp://***"
	}
	return u.Redacted()
}
