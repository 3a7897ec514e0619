package domain

import (
	"context"
	"time"
)

// OAuthGoogle is the only social provider the sign-in view offers.
const OAuthGoogle = "google"

// User is the identity provider's view of an account.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Session is an authenticated user context. It is opaque to the auth view and
// is persisted by the HTTP layer in an HttpOnly cookie session.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Expired reports whether the access token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// Profile is extra account data sent with a sign-up.
type Profile struct {
	FullName string `json:"full_name"`
}

// OAuthRedirect is where the browser must go to continue a social sign-in.
// CodeVerifier must be kept until the provider redirects back with a code.
type OAuthRedirect struct {
	URL          string
	CodeVerifier string
}

// IdentityProvider is the contract of the hosted authentication service.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, profile Profile, redirectTo string) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SendPasswordReset(ctx context.Context, email, redirectTo string) error
	SignInWithOAuth(ctx context.Context, provider, redirectTo string) (*OAuthRedirect, error)
	ExchangeCodeForSession(ctx context.Context, code, codeVerifier string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}
