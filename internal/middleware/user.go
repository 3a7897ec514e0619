package middleware

import (
	"time"

	"github.com/khetguard/khetguard/internal/authsession"
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/labstack/echo/v4"
)

const UserContextKey = "user"

// LoadUser places the signed-in user, if any, in the echo context. Pages are
// not access-controlled; they only greet the user.
func LoadUser(now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user, ok := authsession.User(c, now()); ok {
				c.Set(UserContextKey, user)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user set by LoadUser, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}
