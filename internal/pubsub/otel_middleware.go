package pubsub

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracingPublisher wraps a watermill publisher so every publish is a child
// span of the context carried by the message.
type tracingPublisher struct {
	publisher message.Publisher
	tracer    trace.Tracer
}

func newTracingPublisher(publisher message.Publisher, tracer trace.Tracer) *tracingPublisher {
	return &tracingPublisher{publisher: publisher, tracer: tracer}
}

// Publish implements message.Publisher.
func (p *tracingPublisher) Publish(topic string, messages ...*message.Message) error {
	spans := make([]trace.Span, 0, len(messages))
	for _, msg := range messages {
		ctx, span := p.tracer.Start(msg.Context(), "pubsub.publish."+topic,
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(
				attribute.String("messaging.system", "watermill"),
				attribute.String("messaging.destination", topic),
				attribute.String("messaging.message_id", msg.UUID),
				attribute.String("user.id", msg.Metadata.Get(metaKeyUserID)),
				attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
			),
		)
		msg.SetContext(ctx)
		spans = append(spans, span)
	}

	err := p.publisher.Publish(topic, messages...)
	for _, span := range spans {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
	return err
}

// Close closes the underlying publisher.
func (p *tracingPublisher) Close() error {
	return p.publisher.Close()
}
