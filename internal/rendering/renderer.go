// Package rendering writes templ and gomponents components to echo responses.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders any supported component (templ.Component or gomponents.Node).
type Renderer interface {
	// RenderComponent renders to bytes, e.g. for htmx fragments.
	RenderComponent(ctx context.Context, component any) ([]byte, error)

	// RenderPage writes a full HTML response.
	RenderPage(c echo.Context, status int, component any) error
}

// UniversalRenderer handles both component kinds. It also satisfies echo.Renderer.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode matches gomponents.Node without importing it here.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// RenderComponent implements Renderer.
func (r *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements Renderer. The component is rendered into a buffer
// first so a failure can still produce a clean 500.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	body, err := r.RenderComponent(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, body)
}

// Render implements echo.Renderer so handlers may call c.Render(status, "", component).
func (r *UniversalRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// Redirect sends the browser to url. htmx requests get an HX-Redirect header
// so the full page navigates instead of swapping a fragment.
func Redirect(c echo.Context, url string) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, url)
}
