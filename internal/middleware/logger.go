package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/khetguard/khetguard/internal/pubsub"
	"github.com/labstack/echo/v4"
)

type contextKey string

const loggerKey = contextKey("logger")

// Logger injects a request-scoped logger carrying the request id and logs
// each completed request. Events published during the request carry the id. Place it after the RequestID middleware.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		reqID := c.Response().Header().Get(echo.HeaderXRequestID)
		requestLogger := slog.Default().With("request_id", reqID)

		ctx := pubsub.WithRequestID(req.Context(), reqID)
		c.SetRequest(req.WithContext(context.WithValue(ctx, loggerKey, requestLogger)))

		err := next(c)
		if err != nil {
			// Let the error handler write the response so the status is final.
			c.Error(err)
		}
		requestLogger.Info("Request handled",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start),
		)
		return nil
	}
}

// FromContext returns the request logger, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
