package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/safar/rakhi-store/internal/models"
)

const OrderPlacedQueue = "order.placed"

type Notifier interface {
	OrderPlaced(ctx context.Context, r *models.Receipt) error
}

// Noop drops every notification.
type Noop struct{}

func (Noop) OrderPlaced(context.Context, *models.Receipt) error { return nil }

type OrderPlacedEvent struct {
	EventID    string             `json:"event_id"`
	OccurredAt time.Time          `json:"occurred_at"`
	OrderID    string             `json:"order_id"`
	Phone      string             `json:"phone"`
	Customer   models.Customer    `json:"customer"`
	Timestamp  string             `json:"timestamp"`
	Lines      []models.OrderLine `json:"lines"`
	Total      int64              `json:"total"`
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes order.placed events to a durable queue.
type RabbitPublisher struct {
	ch channel
}

func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		OrderPlacedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", OrderPlacedQueue, err)
	}

	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) OrderPlaced(ctx context.Context, r *models.Receipt) error {
	ev := OrderPlacedEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		OrderID:    r.OrderID,
		Phone:      r.Phone,
		Customer:   r.Customer,
		Timestamp:  r.Timestamp,
		Lines:      r.Lines,
		Total:      r.Total,
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",
		OrderPlacedQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order %s: %w", r.OrderID, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}
