package authview

import (
	"time"

	"github.com/khetguard/khetguard/internal/pubsub"
)

// AuthEvent is published after each successful identity operation.
type AuthEvent struct {
	Email string    `json:"email"`
	Mode  string    `json:"mode"`
	At    time.Time `json:"at"`
}

// Auth topics. The audit module subscribes to all of them.
var (
	TopicAccountCreated = pubsub.NewEvent[AuthEvent]("auth.account.created", "A sign-up was accepted by the identity provider")
	TopicSessionStarted = pubsub.NewEvent[AuthEvent]("auth.session.started", "A password sign-in succeeded")
	TopicResetRequested = pubsub.NewEvent[AuthEvent]("auth.password_reset.requested", "A password recovery email was requested")
	TopicOAuthStarted   = pubsub.NewEvent[AuthEvent]("auth.oauth.started", "A social sign-in redirect was issued")
)

// Topics lists every auth topic.
func Topics() []pubsub.Event[AuthEvent] {
	return []pubsub.Event[AuthEvent]{TopicAccountCreated, TopicSessionStarted, TopicResetRequested, TopicOAuthStarted}
}
