package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp.Channel used to publish events
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPFlightEventRepository publishes events to a topic exchange with the
// routing key flight.<action>
type AMQPFlightEventRepository struct {
	mu       sync.Mutex
	channel  Publisher
	exchange string
}

// NewAMQPFlightEventRepository declares exchange on ch and returns a
// repository publishing to it
func NewAMQPFlightEventRepository(ch *amqp.Channel, exchange string) (repository.FlightEventRepository, error) {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return NewAMQPFlightEventRepositoryWithPublisher(ch, exchange), nil
}

// NewAMQPFlightEventRepositoryWithPublisher wraps an already prepared publisher
func NewAMQPFlightEventRepositoryWithPublisher(p Publisher, exchange string) *AMQPFlightEventRepository {
	return &AMQPFlightEventRepository{
		channel:  p,
		exchange: exchange,
	}
}

// RoutingKey returns the routing key used for an action
func RoutingKey(action entity.FlightAction) string {
	return "flight." + string(action)
}

// Append publishes the event as a persistent JSON message
func (r *AMQPFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal flight event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// Channels are not safe for concurrent publishing.
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.channel.PublishWithContext(ctx, r.exchange, RoutingKey(event.Action), false, false, pub); err != nil {
		return fmt.Errorf("failed to publish flight event: %w", err)
	}
	return nil
}
