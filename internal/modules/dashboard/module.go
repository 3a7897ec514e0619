// Package dashboard serves the home, camera and report pages from an embedded
// mock farm fixture.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/khetguard/khetguard/internal/middleware"
	"github.com/khetguard/khetguard/internal/module"
	"github.com/khetguard/khetguard/internal/modules/audit"
	"github.com/khetguard/khetguard/internal/modules/dashboard/view"
	"github.com/khetguard/khetguard/internal/registry"
	"github.com/labstack/echo/v4"
)

// FixtureKey exposes the parsed fixture to other modules.
var FixtureKey = registry.Key[view.Fixture]("dashboard.fixture")

// Dependencies holds the services required by the dashboard module.
type Dependencies struct {
	// Now is used to check session expiry; defaults to time.Now.
	Now func() time.Time
}

// DashboardModule mounts the dashboard pages.
type DashboardModule struct {
	module.BaseModule
	now     func() time.Time
	fixture view.Fixture
}

// New creates a new DashboardModule.
func New(deps Dependencies) *DashboardModule {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardModule{now: now}
}

// Name returns the module name.
func (m *DashboardModule) Name() string {
	return "dashboard"
}

// Register parses the fixture and publishes it.
func (m *DashboardModule) Register(reg *registry.Registry) error {
	f, err := LoadFixture()
	if err != nil {
		return err
	}
	m.fixture = f
	registry.Set(reg, FixtureKey, f)
	return nil
}

// Boot mounts GET /home, /camera and /report on g.
func (m *DashboardModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	renderer, ok := registry.Get(reg, registry.RendererKey)
	if !ok {
		return fmt.Errorf("dashboard: renderer %q is not registered", registry.RendererKey)
	}
	// The audit module is optional.
	log, _ := registry.Get(reg, audit.LogKey)

	h := NewHandler(m.fixture, renderer, log)
	pages := g.Group("", middleware.LoadUser(m.now))
	pages.GET("/home", h.Home)
	pages.GET("/camera", h.Camera)
	pages.GET("/report", h.Report)

	slog.Info("DashboardModule routes mounted", "cameras", len(m.fixture.Cameras))
	return nil
}
