package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/khetguard/khetguard/internal/authsession"
	"github.com/khetguard/khetguard/internal/authview"
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/khetguard/khetguard/internal/middleware"
	"github.com/khetguard/khetguard/internal/rendering"
	"github.com/khetguard/khetguard/internal/view"
	"github.com/khetguard/khetguard/web/src/templates/layouts"
	"github.com/khetguard/khetguard/web/src/templates/pages"
	"github.com/labstack/echo/v4"
)

const (
	authPath = "/signup"
	homePath = "/home"

	msgLoggedOut = "You have been logged out."
)

// AuthHandler serves the auth view and the OAuth and logout endpoints.
type AuthHandler struct {
	views    *authview.Store
	provider domain.IdentityProvider
	renderer rendering.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(views *authview.Store, provider domain.IdentityProvider, renderer rendering.Renderer) *AuthHandler {
	return &AuthHandler{
		views:    views,
		provider: provider,
		renderer: renderer,
	}
}

// view returns this browser's auth view, issuing a new one when the session
// has none or it expired.
func (h *AuthHandler) view(c echo.Context) *authview.View {
	id := authsession.ViewID(c)
	newID, v := h.views.GetOrCreate(id)
	if newID != id {
		if err := authsession.SetViewID(c, newID); err != nil {
			middleware.FromContext(c.Request().Context()).Error("Failed to store auth view id", "error", err)
		}
	}
	return v
}

// SignupGet renders the auth card in its current mode (GET /signup).
func (h *AuthHandler) SignupGet(c echo.Context) error {
	v := h.view(c)
	page := layouts.Page{
		Title:   "Sign up",
		Flashes: view.GetFlashData(c),
		Bare:    true,
	}
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base(page, pages.AuthPage(v.Snapshot())))
}

// SwitchMode changes the presented form (POST /signup/mode).
func (h *AuthHandler) SwitchMode(c echo.Context) error {
	var req ModeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown view mode")
	}
	mode, err := authview.ParseMode(req.Mode)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.view(c).SwitchView(mode)
	return c.Redirect(http.StatusSeeOther, authPath)
}

// SignupPost submits the sign-up form (POST /signup).
func (h *AuthHandler) SignupPost(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.afterSubmit(c, h.view(c).SubmitSignup(c.Request().Context(), req.Form()))
}

// LoginPost submits the login form (POST /login) and keeps the session in the cookie.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	sess, err := h.view(c).SubmitLogin(c.Request().Context(), req.Form())
	if err == nil {
		if serr := authsession.SignIn(c, sess); serr != nil {
			return serr
		}
	}
	return h.afterSubmit(c, err)
}

// ResetPost submits the reset form (POST /reset).
func (h *AuthHandler) ResetPost(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.afterSubmit(c, h.view(c).SubmitReset(c.Request().Context(), req.Form()))
}

// OAuthPost starts social sign-in (POST /auth/oauth) and sends the browser to the provider.
func (h *AuthHandler) OAuthPost(c echo.Context) error {
	redirect, err := h.view(c).StartOAuth(c.Request().Context())
	if err != nil {
		return h.afterSubmit(c, err)
	}
	if err := authsession.SetVerifier(c, redirect.CodeVerifier); err != nil {
		return err
	}
	return rendering.Redirect(c, redirect.URL)
}

// afterSubmit turns a submission result into a response. Outcomes are shown
// by the auth card, so every case redirects back to it except a rejected
// double submission from htmx.
func (h *AuthHandler) afterSubmit(c echo.Context, err error) error {
	if errors.Is(err, authview.ErrSubmissionInFlight) && rendering.IsHTMX(c) {
		return c.JSON(http.StatusConflict, ErrorResponse{Code: "submission_in_flight", Message: err.Error()})
	}
	if errors.Is(err, authview.ErrOAuthUnavailable) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Redirect(http.StatusSeeOther, authPath)
}

// Landing renders the public landing page (GET /). When the identity provider
// redirects back with an authorization code, the PKCE exchange completes here.
func (h *AuthHandler) Landing(c echo.Context) error {
	if code := c.QueryParam("code"); code != "" {
		return h.completeOAuth(c, code)
	}
	if desc := c.QueryParam("error_description"); desc != "" {
		view.SetFlashError(c, desc)
		return c.Redirect(http.StatusSeeOther, authPath)
	}
	page := layouts.Page{
		User:    middleware.CurrentUser(c),
		Flashes: view.GetFlashData(c),
	}
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base(page, pages.LandingPage()))
}

func (h *AuthHandler) completeOAuth(c echo.Context, code string) error {
	logger := middleware.FromContext(c.Request().Context())

	verifier, err := authsession.TakeVerifier(c)
	if err != nil || verifier == "" {
		logger.Warn("OAuth callback without a pending verifier", "error", err)
		view.SetFlashError(c, authview.MsgOAuthFailed)
		return c.Redirect(http.StatusSeeOther, authPath)
	}

	sess, err := h.provider.ExchangeCodeForSession(c.Request().Context(), code, verifier)
	if err != nil {
		logger.Warn("OAuth code exchange failed", "error", err)
		msg := domain.UserMessage(err)
		if msg == "" {
			msg = authview.MsgOAuthFailed
		}
		view.SetFlashError(c, msg)
		return c.Redirect(http.StatusSeeOther, authPath)
	}
	if err := authsession.SignIn(c, sess); err != nil {
		return err
	}
	view.SetFlashSuccess(c, authview.MsgLoginSuccess)
	return c.Redirect(http.StatusSeeOther, homePath)
}

// Logout revokes the provider session and clears it from the cookie (POST /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := authsession.AccessToken(c); token != "" {
		if err := h.provider.SignOut(c.Request().Context(), token); err != nil {
			// The cookie is cleared regardless; the token simply expires upstream.
			slog.Warn("Identity sign-out failed", "error", err)
		}
	}
	if err := authsession.SignOut(c); err != nil {
		return err
	}
	view.SetFlashSuccess(c, msgLoggedOut)
	return c.Redirect(http.StatusSeeOther, authPath)
}
