package module

import (
	"context"

	"github.com/khetguard/khetguard/internal/registry"
	"github.com/labstack/echo/v4"
)

// Module defines the contract for a self-contained application feature.
type Module interface {
	// Name returns a unique identifier for the module.
	Name() string

	// Register is called during startup so the module can publish its services.
	Register(reg *registry.Registry) error

	// Boot is called after every module registered. Routes and background
	// subscriptions start here and must stop when ctx is cancelled.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown is called during graceful shutdown.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op implementations for the optional phases.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}
