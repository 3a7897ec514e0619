package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// WatermillBridge is a Bus backed by watermill's in-memory GoChannel.
type WatermillBridge struct {
	channel *gochannel.GoChannel
	pub     message.Publisher
	sub     message.Subscriber
}

const (
	// Metadata keys used to transfer our Message structure fields through watermill's message.
	metaKeyUserID = "user_id"
	metaKeyTopic  = "topic"
)

var _ Bus = (*WatermillBridge)(nil)

// NewWatermillBridge initializes an in-memory Pub/Sub system without tracing.
func NewWatermillBridge() *WatermillBridge {
	return NewWatermillBridgeWithTracer(noop.NewTracerProvider().Tracer("pubsub"))
}

// NewWatermillBridgeWithTracer initializes an in-memory Pub/Sub system whose
// publishes are recorded as spans on tracer.
func NewWatermillBridgeWithTracer(tracer trace.Tracer) *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)

	return &WatermillBridge{
		channel: goChannel,
		pub:     newTracingPublisher(goChannel, tracer),
		sub:     goChannel,
	}
}

// mapToWatermillMessage converts our pubsub.Message to a watermill message.
func mapToWatermillMessage(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	wmMsg.Metadata.Set(metaKeyUserID, msg.UserID)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	return wmMsg
}

// mapToPubSubMessage converts a watermill message back to our internal pubsub.Message.
func mapToPubSubMessage(wmMsg *message.Message) Message {
	metadata := make(map[string]string)
	for k, v := range wmMsg.Metadata {
		if k != metaKeyUserID && k != metaKeyTopic {
			metadata[k] = v
		}
	}
	return Message{
		Topic:    wmMsg.Metadata.Get(metaKeyTopic),
		UserID:   wmMsg.Metadata.Get(metaKeyUserID),
		Payload:  wmMsg.Payload,
		Metadata: metadata,
	}
}

// Publish implements the Publisher interface.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wmMsg := mapToWatermillMessage(msg)
	wmMsg.SetContext(ctx)
	return wb.pub.Publish(msg.Topic, wmMsg)
}

// Subscribe implements the Subscriber interface.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			msg := mapToPubSubMessage(wmMsg)
			if err := handler(wmMsg.Context(), msg); err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
				// The in-memory channel would redeliver a nacked message forever; log and move on.
				wmMsg.Ack()
				continue
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close implements the Publisher and Subscriber interface to shut down the bridge.
func (wb *WatermillBridge) Close() error {
	return wb.channel.Close()
}
