// Package pubsub is the in-process event bus. Auth outcomes are published as
// typed events and picked up by modules such as the audit log.
package pubsub

import (
	"context"
	"io"
)

// MetaRequestID is the metadata key holding the id of the HTTP request that
// produced a message.
const MetaRequestID = "request_id"

// Message is one event on the bus. Payload is the JSON form of the topic's
// event type.
type Message struct {
	Topic    string
	UserID   string
	Payload  []byte
	Metadata map[string]string
}

// Meta returns the metadata value for key, or "".
func (m Message) Meta(key string) string {
	return m.Metadata[key]
}

// Handler processes one delivered message. A returned error is logged and the
// message is dropped; the bus never redelivers.
type Handler func(ctx context.Context, msg Message) error

// Publisher puts messages on the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Subscriber delivers a topic's messages to handler on a background goroutine
// until ctx is canceled or the bus is closed.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
}

// Bus is both ends of the event bus. Closing it ends every subscription.
type Bus interface {
	Publisher
	Subscriber
	io.Closer
}

type requestIDKey struct{}

// WithRequestID tags ctx so that messages published under it carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id set by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
