package broker

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connection bundles an AMQP connection with the channel used for publishing
type Connection struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
}

// Dial connects to the broker at url and opens a channel
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	return &Connection{Conn: conn, Channel: ch}, nil
}

// Close closes the channel and then the connection
func (c *Connection) Close() error {
	chErr := c.Channel.Close()
	if err := c.Conn.Close(); err != nil {
		return err
	}
	return chErr
}
