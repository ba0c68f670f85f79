// Package events fans store changes out to the optional sinks: journal
// database, Kafka, Elasticsearch, the SSE stream, cache invalidation and
// metrics.
package events

import (
	"context"
	"time"

	"salon-wellness-backend/models"
)

type Kind string

const (
	ClientCreated   Kind = "client_created"
	SessionRecorded Kind = "session_recorded"
)

// Event describes one store mutation. Client is the client after the change
// (nil for an orphan session). Version is the store version the change
// produced.
type Event struct {
	Kind    Kind            `json:"event"`
	At      time.Time       `json:"at"`
	Version uint64          `json:"version"`
	Client  *models.Client  `json:"client,omitempty"`
	Session *models.Session `json:"session,omitempty"`
}

// ClientID returns the client the event concerns.
func (e Event) ClientID() string {
	if e.Client != nil {
		return e.Client.ID
	}
	if e.Session != nil {
		return e.Session.ClientID
	}
	return ""
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, e Event) error

func (f PublisherFunc) Publish(ctx context.Context, e Event) error {
	return f(ctx, e)
}
