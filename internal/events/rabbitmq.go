package events

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQBackend publishes events over a RabbitMQ connection/channel pair.
type RabbitMQBackend struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitMQBackend connects to the broker at the given URL.
func NewRabbitMQBackend(url string) (*RabbitMQBackend, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &RabbitMQBackend{conn: conn, channel: ch}, nil
}

// Publish sends a message to the named queue, declaring it on first use.
func (r *RabbitMQBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(channel) == "" {
		return "", errors.New("rabbitmq channel is required")
	}

	if _, err := r.channel.QueueDeclare(channel, true, false, false, false, nil); err != nil {
		return "", err
	}

	headers := amqp.Table{}
	for key, value := range attrs {
		headers[key] = value
	}

	messageID := newMessageID()
	err := r.channel.PublishWithContext(ctx, "", channel, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   messageID,
		Headers:     headers,
		Body:        data,
	})
	if err != nil {
		return "", err
	}
	return messageID, nil
}

// Close closes the underlying channel and connection.
func (r *RabbitMQBackend) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func newMessageID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(buf[:])
}
