package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event[T] binds a topic name to its payload type so publishers and
// subscribers cannot disagree on the shape of a message.
type Event[T any] struct {
	topicName   string
	description string
}

// NewEvent creates a typed event.
func NewEvent[T any](name, description string) Event[T] {
	return Event[T]{topicName: name, description: description}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Description returns the human readable purpose of the topic.
func (e Event[T]) Description() string {
	return e.description
}

// Publish sends a typed event. The request id on ctx, if any, travels in the
// message metadata.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], userID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}
	msg := Message{
		Topic:   event.Name(),
		UserID:  userID,
		Payload: data,
	}
	if id := RequestID(ctx); id != "" {
		msg.Metadata = map[string]string{MetaRequestID: id}
	}
	return p.Publish(ctx, msg)
}

// Decode unmarshals msg into the event's payload type.
func Decode[T any](event Event[T], msg Message) (T, error) {
	var out T
	if msg.Topic != "" && msg.Topic != event.Name() {
		return out, fmt.Errorf("message topic %q does not match %q", msg.Topic, event.Name())
	}
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", event.Name(), err)
	}
	return out, nil
}
