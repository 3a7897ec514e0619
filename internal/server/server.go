package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/khetguard/khetguard/internal/authsession"
	"github.com/khetguard/khetguard/internal/authview"
	"github.com/khetguard/khetguard/internal/config"
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/khetguard/khetguard/internal/handlers"
	"github.com/khetguard/khetguard/internal/metrics"
	appmiddleware "github.com/khetguard/khetguard/internal/middleware"
	"github.com/khetguard/khetguard/internal/module"
	"github.com/khetguard/khetguard/internal/pubsub"
	"github.com/khetguard/khetguard/internal/registry"
	"github.com/khetguard/khetguard/internal/rendering"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// sweepInterval is how often idle auth views are evicted.
const sweepInterval = time.Minute

// Dependencies holds the services the server is built from.
type Dependencies struct {
	Config     config.Provider
	Identity   domain.IdentityProvider
	Renderer   rendering.Renderer
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Echo       *echo.Echo
	// Metrics receives the HTTP and auth collectors and is served on /metrics.
	// A fresh registry is used when nil.
	Metrics *prometheus.Registry
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Identity domain.IdentityProvider
	Renderer rendering.Renderer
	Views    *authview.Store
	Metrics  *prometheus.Registry

	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	now        func() time.Time
	modules    []module.Module
}

// New creates a new Server with the global middleware installed. Routes are
// added by RegisterRoutes and InitModules.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Identity == nil {
		return nil, errors.New("server: identity provider is required")
	}
	if deps.Renderer == nil {
		deps.Renderer = rendering.NewUniversalRenderer()
	}
	if deps.Echo == nil {
		deps.Echo = echo.New()
	}
	if deps.Metrics == nil {
		deps.Metrics = prometheus.NewRegistry()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &Server{
		E:          deps.Echo,
		Cfg:        deps.Config,
		Identity:   deps.Identity,
		Renderer:   deps.Renderer,
		Metrics:    deps.Metrics,
		publisher:  deps.Publisher,
		subscriber: deps.Subscriber,
		now:        deps.Now,
	}

	var views *authview.Store
	authMetrics, err := metrics.NewAuth(deps.Metrics, func() float64 { return float64(views.Len()) })
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	views = authview.NewStore(deps.Config.GetAuthViewTTL(), s.viewFactory(authMetrics))
	s.Views = views

	e := s.E
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	if r, ok := deps.Renderer.(echo.Renderer); ok {
		e.Renderer = r
	}
	setupErrorHandling(e)

	secure := strings.HasPrefix(deps.Config.GetAppBaseURL(), "https://")
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "khetguard",
		Registerer: deps.Metrics,
	}))
	e.Use(session.Middleware(authsession.NewCookieStore(deps.Config.GetSessionSecret(), secure)))

	return s, nil
}

func (s *Server) viewFactory(recorder authview.Recorder) func() *authview.View {
	opts := authview.Options{
		Origin:        s.Cfg.GetAppBaseURL(),
		OAuthProvider: s.Cfg.GetOAuthProvider(),
		Publisher:     s.publisher,
		Recorder:      recorder,
		Now:           s.now,
	}
	return func() *authview.View {
		return authview.New(s.Identity, opts)
	}
}

// InitModules registers every module, then boots them on the root group.
// Modules stop their background work when ctx is cancelled.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	registry.Set(reg, registry.AuthViewsKey, s.Views)
	registry.Set(reg, registry.RendererKey, s.Renderer)
	if s.publisher != nil {
		registry.Set(reg, registry.PublisherKey, s.publisher)
	}
	if s.subscriber != nil {
		registry.Set(reg, registry.SubscriberKey, s.subscriber)
	}

	for _, m := range modules {
		slog.Info("Registering module", "module", m.Name())
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	root := s.E.Group("")
	for _, m := range modules {
		slog.Info("Booting module", "module", m.Name())
		if err := m.Boot(ctx, root, reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	s.modules = modules
	return nil
}
