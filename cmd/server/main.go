package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khetguard/khetguard/internal/app"
	"github.com/khetguard/khetguard/internal/config"
	"github.com/khetguard/khetguard/internal/identity"
	"github.com/khetguard/khetguard/internal/logging"
	"github.com/khetguard/khetguard/internal/pubsub"
	"github.com/khetguard/khetguard/internal/registry"
	"github.com/khetguard/khetguard/internal/rendering"
	"github.com/khetguard/khetguard/internal/server"
	"github.com/khetguard/khetguard/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		// Fail before serving anything so a missing SUPABASE_URL is obvious.
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.GetTracing())
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracing(flushCtx)
	}()

	idp, err := identity.New(cfg.GetIdentityURL(), cfg.GetIdentityKey(),
		identity.WithTimeout(cfg.GetIdentityTimeout()),
		identity.WithTracer(tracer),
	)
	if err != nil {
		return err
	}

	ps := pubsub.NewWatermillBridgeWithTracer(tracer)
	defer ps.Close()

	metricsReg := prometheus.NewRegistry()
	metricsReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	renderer := rendering.NewUniversalRenderer()
	s, err := server.New(server.Dependencies{
		Config:     cfg,
		Identity:   idp,
		Renderer:   renderer,
		Publisher:  ps,
		Subscriber: ps,
		Metrics:    metricsReg,
	})
	if err != nil {
		return err
	}
	s.RegisterRoutes()

	reg := registry.New(cfg)
	modules := app.NewModules(app.Dependencies{Subscriber: ps})
	if err := s.InitModules(ctx, modules, reg); err != nil {
		return err
	}

	return s.Start(ctx)
}
