package server

import (
	"net/http"

	"github.com/khetguard/khetguard/internal/handlers"
	"github.com/khetguard/khetguard/internal/middleware"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

// authRequestsPerMinute bounds auth form posts per client IP.
const authRequestsPerMinute = 10

// RegisterRoutes sets up the core application routes.
func (s *Server) RegisterRoutes() {
	authHandler := handlers.NewAuthHandler(s.Views, s.Identity, s.Renderer)
	rateLimiter := middleware.RateLimiter(authRequestsPerMinute)
	loadUser := middleware.LoadUser(s.now)

	s.E.GET("/", authHandler.Landing, loadUser)

	s.E.GET("/signup", authHandler.SignupGet)
	s.E.POST("/signup/mode", authHandler.SwitchMode)
	s.E.POST("/signup", authHandler.SignupPost, rateLimiter)
	s.E.POST("/login", authHandler.LoginPost, rateLimiter)
	s.E.POST("/reset", authHandler.ResetPost, rateLimiter)
	s.E.POST("/auth/oauth", authHandler.OAuthPost, rateLimiter)
	s.E.POST("/logout", authHandler.Logout)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	s.E.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics,
	}))
}
