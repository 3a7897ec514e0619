// Package authsession keeps per-browser auth state in the signed session cookie:
// the auth view id, the signed-in identity and a pending PKCE verifier.
package authsession

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Name is the cookie session that holds auth state.
const Name = "khetguard-session"

const (
	keyViewID      = "view_id"
	keyAccessToken = "access_token"
	keyEmail       = "email"
	keyUserID      = "user_id"
	keyExpiresAt   = "expires_at"
	keyVerifier    = "pkce_verifier"
)

// ErrNoSession is returned when no session store is attached to the request.
var ErrNoSession = errors.New("session store is not configured")

// NewCookieStore creates the cookie store used for every session.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func get(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(Name, c)
	if err != nil {
		return nil, errors.Join(ErrNoSession, err)
	}
	return sess, nil
}

func save(c echo.Context, sess *sessions.Session) error {
	return sess.Save(c.Request(), c.Response())
}

func str(sess *sessions.Session, key string) string {
	v, _ := sess.Values[key].(string)
	return v
}

// ViewID returns the auth view id, or "" when none was issued yet.
func ViewID(c echo.Context) string {
	sess, err := get(c)
	if err != nil {
		return ""
	}
	return str(sess, keyViewID)
}

// SetViewID remembers the auth view id for this browser.
func SetViewID(c echo.Context, id string) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	sess.Values[keyViewID] = id
	return save(c, sess)
}

// User returns the signed-in user when the stored session has not expired.
func User(c echo.Context, now time.Time) (*domain.User, bool) {
	sess, err := get(c)
	if err != nil || str(sess, keyAccessToken) == "" {
		return nil, false
	}
	if exp, ok := sess.Values[keyExpiresAt].(int64); ok && exp > 0 && !now.Before(time.Unix(exp, 0)) {
		return nil, false
	}
	return &domain.User{ID: str(sess, keyUserID), Email: str(sess, keyEmail)}, true
}

// AccessToken returns the stored access token, if any.
func AccessToken(c echo.Context) string {
	sess, err := get(c)
	if err != nil {
		return ""
	}
	return str(sess, keyAccessToken)
}

// SignIn stores s as the browser's identity. Sessions without an access
// token (e.g. sign-up awaiting confirmation) are ignored.
func SignIn(c echo.Context, s *domain.Session) error {
	if s == nil || s.AccessToken == "" {
		return nil
	}
	sess, err := get(c)
	if err != nil {
		return err
	}
	sess.Values[keyAccessToken] = s.AccessToken
	sess.Values[keyUserID] = s.User.ID
	sess.Values[keyEmail] = s.User.Email
	if !s.ExpiresAt.IsZero() {
		sess.Values[keyExpiresAt] = s.ExpiresAt.Unix()
	}
	return save(c, sess)
}

// SignOut forgets the identity but keeps the auth view.
func SignOut(c echo.Context) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	for _, k := range []string{keyAccessToken, keyUserID, keyEmail, keyExpiresAt, keyVerifier} {
		delete(sess.Values, k)
	}
	return save(c, sess)
}

// SetVerifier stores the PKCE verifier until the OAuth redirect returns.
func SetVerifier(c echo.Context, verifier string) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	sess.Values[keyVerifier] = verifier
	return save(c, sess)
}

// TakeVerifier returns and removes the pending PKCE verifier.
func TakeVerifier(c echo.Context) (string, error) {
	sess, err := get(c)
	if err != nil {
		return "", err
	}
	v := str(sess, keyVerifier)
	if v == "" {
		return "", nil
	}
	delete(sess.Values, keyVerifier)
	return v, save(c, sess)
}
