package registry

import (
	"github.com/khetguard/khetguard/internal/authview"
	"github.com/khetguard/khetguard/internal/pubsub"
	"github.com/khetguard/khetguard/internal/rendering"
)

// Core service keys registered by the server before modules boot.
var (
	AuthViewsKey  Key[*authview.Store]    = "core.authviews"
	PublisherKey  Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey   Key[rendering.Renderer] = "core.renderer"
)
