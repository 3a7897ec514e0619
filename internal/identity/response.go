package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/khetguard/khetguard/internal/domain"
)

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// sessionResponse covers both session payloads and the bare user object the
// sign-up endpoint returns when email confirmation is pending.
type sessionResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`

	// Present when the body is the user itself.
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// accessClaims are the fields read from a provider access token.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (r *sessionResponse) toSession(now time.Time) *domain.Session {
	s := &domain.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
	}

	u := r.User
	if u == nil && r.ID != "" {
		u = &userResponse{ID: r.ID, Email: r.Email, UserMetadata: r.UserMetadata}
	}
	if u != nil {
		s.User = domain.User{ID: u.ID, Email: u.Email}
		if name, ok := u.UserMetadata["full_name"].(string); ok {
			s.User.FullName = name
		}
	}

	switch {
	case r.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(r.ExpiresAt, 0)
	case r.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}

	if r.AccessToken != "" {
		fillFromClaims(s, r.AccessToken)
	}
	return s
}

// fillFromClaims completes missing session fields from the access token. The
// signature is not checked; the values are only used for display and expiry.
func fillFromClaims(s *domain.Session, token string) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return
	}
	if s.User.ID == "" {
		s.User.ID = claims.Subject
	}
	if s.User.Email == "" {
		s.User.Email = claims.Email
	}
	if s.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
}

type errorResponse struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// decodeError maps a failed response to a ProviderError, keeping the
// provider's own message when it sent one.
func decodeError(op string, status int, raw []byte) *domain.ProviderError {
	perr := &domain.ProviderError{Op: op, Status: status}

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil {
		perr.Code = firstNonEmpty(body.ErrorCode, body.Error)
		perr.Message = firstNonEmpty(body.Msg, body.Message, body.ErrorDescription, body.Error)
	}

	switch {
	case status == http.StatusTooManyRequests:
		perr.Err = domain.ErrRateLimited
	case perr.Code == "user_already_exists" || perr.Code == "email_exists":
		perr.Err = domain.ErrUserAlreadyExists
	case perr.Code == "invalid_grant" || perr.Code == "invalid_credentials":
		perr.Err = domain.ErrInvalidCredentials
	default:
		perr.Err = errors.New(http.StatusText(status))
	}
	return perr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
