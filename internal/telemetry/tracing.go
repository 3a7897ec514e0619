package telemetry

import (
	"context"
	"log/slog"

	"github.com/khetguard/khetguard/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Version is reported as the service version on exported spans.
var Version = "0.1.0"

// SetupTracing initializes OpenTelemetry with a Zipkin exporter and installs it
// as the global tracer provider. If tracing is disabled it returns a no-op tracer.
func SetupTracing(ctx context.Context, cfg config.TracingConfig) (trace.Tracer, func(context.Context), error) {
	if !cfg.Enabled {
		return noop.NewTracerProvider().Tracer("khetguard"), func(context.Context) {}, nil
	}

	exporter, err := zipkin.New(cfg.ZipkinURL)
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(Version),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	cleanup := func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Failed to flush traces", "error", err)
		}
	}
	return tp.Tracer("khetguard"), cleanup, nil
}
