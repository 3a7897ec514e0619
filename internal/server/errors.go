package server

import (
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// setupErrorHandling installs an HTTP error handler that logs errors which
// are not echo.HTTPErrors with a stack trace before rendering the 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
