// Package events publishes person lifecycle audit events to a message
// broker. Publishing is optional and best-effort: the service layer
// logs failures and never surfaces them to the client.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event channels.
const (
	ChannelPersonCreated = "person.created"
	ChannelPersonUpdated = "person.updated"
	ChannelPersonDeleted = "person.deleted"
)

// PersonEvent is the payload published on person lifecycle changes.
type PersonEvent struct {
	PersonID   int       `json:"person_id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Backend defines the broker-agnostic publish operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher wraps a backend with a stable API.
type Publisher struct {
	backend Backend
}

// NewPublisher constructs a Publisher for the provided backend.
func NewPublisher(backend Backend) *Publisher {
	return &Publisher{backend: backend}
}

// PublishPerson sends a person lifecycle event to the named channel.
func (p *Publisher) PublishPerson(ctx context.Context, channel string, event PersonEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.backend.Publish(ctx, channel, data, map[string]string{
		"content-type": "application/json",
	})
	return err
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}
