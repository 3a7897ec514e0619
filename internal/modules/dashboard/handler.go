package dashboard

import (
	"net/http"

	"github.com/khetguard/khetguard/internal/authview"
	"github.com/khetguard/khetguard/internal/middleware"
	"github.com/khetguard/khetguard/internal/modules/audit"
	"github.com/khetguard/khetguard/internal/modules/dashboard/view"
	"github.com/khetguard/khetguard/internal/rendering"
	internalview "github.com/khetguard/khetguard/internal/view"
	"github.com/khetguard/khetguard/web/src/templates/layouts"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

var activityLabels = map[string]string{
	authview.TopicAccountCreated.Name(): "Account created",
	authview.TopicSessionStarted.Name(): "Signed in",
	authview.TopicResetRequested.Name(): "Password reset requested",
	authview.TopicOAuthStarted.Name():   "Google sign-in started",
}

// Handler serves the dashboard pages.
type Handler struct {
	fixture  view.Fixture
	renderer rendering.Renderer
	log      *audit.Log
}

// NewHandler creates a new Handler. log may be nil.
func NewHandler(fixture view.Fixture, renderer rendering.Renderer, log *audit.Log) *Handler {
	return &Handler{fixture: fixture, renderer: renderer, log: log}
}

func (h *Handler) render(c echo.Context, title string, body g.Node) error {
	page := layouts.Page{
		Title:   title,
		User:    middleware.CurrentUser(c),
		Flashes: internalview.GetFlashData(c),
	}
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base(page, body))
}

// Home handles GET /home.
func (h *Handler) Home(c echo.Context) error {
	return h.render(c, "Dashboard", view.HomePage(middleware.CurrentUser(c), h.fixture, h.activity()))
}

// Camera handles GET /camera.
func (h *Handler) Camera(c echo.Context) error {
	return h.render(c, "Camera Feeds", view.CameraPage(h.fixture.Cameras, c.QueryParam("filter")))
}

// Report handles GET /report.
func (h *Handler) Report(c echo.Context) error {
	return h.render(c, "Reports", view.ReportPage(h.fixture.Report))
}

func (h *Handler) activity() []view.Activity {
	if h.log == nil {
		return nil
	}
	entries := h.log.Recent()
	out := make([]view.Activity, 0, len(entries))
	for _, e := range entries {
		what, ok := activityLabels[e.Topic]
		if !ok {
			what = e.Topic
		}
		out = append(out, view.Activity{What: what, Email: e.Email, At: e.At})
	}
	return out
}
