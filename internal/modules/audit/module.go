package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/khetguard/khetguard/internal/authview"
	"github.com/khetguard/khetguard/internal/module"
	"github.com/khetguard/khetguard/internal/pubsub"
	"github.com/khetguard/khetguard/internal/registry"
	"github.com/labstack/echo/v4"
)

// LogKey exposes the audit log to other modules.
var LogKey = registry.Key[*Log]("audit.log")

// DefaultLimit is how many events the log keeps.
const DefaultLimit = 20

// Dependencies holds the services required by the audit module.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Limit      int
}

// AuditModule records every auth event published by the auth views.
type AuditModule struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	log        *Log
}

// New creates a new AuditModule.
func New(deps Dependencies) *AuditModule {
	limit := deps.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	return &AuditModule{
		subscriber: deps.Subscriber,
		log:        NewLog(limit),
	}
}

// Name returns the module name.
func (m *AuditModule) Name() string {
	return "audit"
}

// Register publishes the log.
func (m *AuditModule) Register(reg *registry.Registry) error {
	registry.Set(reg, LogKey, m.log)
	return nil
}

// Boot subscribes to every auth topic until ctx is cancelled.
func (m *AuditModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	for _, topic := range authview.Topics() {
		if err := m.subscriber.Subscribe(ctx, topic.Name(), m.handler(topic)); err != nil {
			return fmt.Errorf("subscribe to %s: %w", topic.Name(), err)
		}
	}
	slog.Info("AuditModule subscribed to auth topics", "count", len(authview.Topics()))
	return nil
}

func (m *AuditModule) handler(topic pubsub.Event[authview.AuthEvent]) pubsub.Handler {
	return func(ctx context.Context, msg pubsub.Message) error {
		ev, err := pubsub.Decode(topic, msg)
		if err != nil {
			slog.Warn("Dropping malformed auth event", "topic", msg.Topic, "error", err)
			return err
		}
		reqID := msg.Meta(pubsub.MetaRequestID)
		m.log.Add(Entry{Topic: topic.Name(), Email: ev.Email, Mode: ev.Mode, RequestID: reqID, At: ev.At})
		slog.Info("Auth event", "topic", topic.Name(), "email", ev.Email, "mode", ev.Mode, "request_id", reqID)
		return nil
	}
}

// Log returns the module's event log.
func (m *AuditModule) Log() *Log {
	return m.log
}
