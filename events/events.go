// Package events publishes order lifecycle messages for downstream
// fulfillment. Publishing is best-effort and never fails the originating
// request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"storefront/models"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
	Close() error
}

type amqpPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewAMQP connects to the broker and declares the orders queue.
func NewAMQP(url, queue string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &amqpPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *amqpPublisher) OrderPlaced(ctx context.Context, order *models.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish order %s: %w", order.ID, err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	p.ch.Close()
	return p.conn.Close()
}

// Nop satisfies Publisher when no broker is configured.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, *models.Order) error { return nil }
func (Nop) Close() error                                     { return nil }

