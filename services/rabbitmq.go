package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type EventType string

const (
	EventRequestCreated      EventType = "request_created"
	EventRequestAccepted     EventType = "request_accepted"
	EventRequestAutoAccepted EventType = "request_auto_accepted"
	EventRequestRejected     EventType = "request_rejected"
)

// FriendshipEvent - one step of a friend request lifecycle.
// Origin sent the request, Target received it.
type FriendshipEvent struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"type"`
	RelationID int64     `json:"relation_id"`
	Origin     int64     `json:"origin"`
	Target     int64     `json:"target"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(t EventType, relationID, origin, target int64) FriendshipEvent {
	return FriendshipEvent{
		EventID:    uuid.NewString(),
		Type:       t,
		RelationID: relationID,
		Origin:     origin,
		Target:     target,
		OccurredAt: time.Now().UTC(),
	}
}

func (e FriendshipEvent) RoutingKey() string {
	return fmt.Sprintf("friend.%s", e.Type)
}

type EventPublisher interface {
	Publish(ctx context.Context, event FriendshipEvent) error
}

// RabbitPublisher publishes friendship events to a topic exchange.
type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitPublisher connects and declares the exchange.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // args
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	log.Printf("RabbitMQ initialized, exchange %s", exchange)
	return &RabbitPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish is safe for concurrent use; amqp channels are not.
func (p *RabbitPublisher) Publish(ctx context.Context, event FriendshipEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, FriendshipEvent) error {
	return nil
}
