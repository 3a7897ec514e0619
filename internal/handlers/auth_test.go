package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/khetguard/khetguard/internal/authsession"
	"github.com/khetguard/khetguard/internal/authview"
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/khetguard/khetguard/internal/handlers"
	"github.com/khetguard/khetguard/internal/rendering"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!!"

// stubProvider is a minimal domain.IdentityProvider.
type stubProvider struct {
	mu        sync.Mutex
	signIn    func(ctx context.Context) (*domain.Session, error)
	exchange  func(code, verifier string) (*domain.Session, error)
	signedOut []string
	signups   int
}

func (p *stubProvider) SignUp(ctx context.Context, email, password string, profile domain.Profile, redirectTo string) (*domain.Session, error) {
	p.mu.Lock()
	p.signups++
	p.mu.Unlock()
	return &domain.Session{User: domain.User{Email: email}}, nil
}

func (p *stubProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	if p.signIn != nil {
		return p.signIn(ctx)
	}
	if password != "password123" {
		return nil, &domain.ProviderError{Op: "sign_in_with_password", Status: 400, Message: "Invalid login credentials"}
	}
	return &domain.Session{
		AccessToken: "access-token",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        domain.User{ID: "u-1", Email: email},
	}, nil
}

func (p *stubProvider) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	return nil
}

func (p *stubProvider) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (*domain.OAuthRedirect, error) {
	return &domain.OAuthRedirect{URL: "https://idp.example/authorize?provider=" + provider, CodeVerifier: "verifier-1"}, nil
}

func (p *stubProvider) ExchangeCodeForSession(ctx context.Context, code, verifier string) (*domain.Session, error) {
	if p.exchange != nil {
		return p.exchange(code, verifier)
	}
	return nil, errors.New("unexpected exchange")
}

func (p *stubProvider) SignOut(ctx context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signedOut = append(p.signedOut, accessToken)
	return nil
}

// browser replays cookies between requests like a real client.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
	mu      sync.Mutex
}

func (b *browser) do(method, target string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	b.mu.Lock()
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	b.mu.Unlock()

	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)

	b.mu.Lock()
	for _, ck := range rec.Result().Cookies() {
		b.cookies[ck.Name] = ck
	}
	b.mu.Unlock()
	return rec
}

func setupAuthTest(t *testing.T, provider *stubProvider) *browser {
	t.Helper()
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(authsession.NewCookieStore(testSessionSecret, false)))

	store := authview.NewStore(time.Hour, func() *authview.View {
		return authview.New(provider, authview.Options{Origin: "http://localhost:8080"})
	})
	h := handlers.NewAuthHandler(store, provider, rendering.NewUniversalRenderer())

	e.GET("/", h.Landing)
	e.GET("/signup", h.SignupGet)
	e.POST("/signup/mode", h.SwitchMode)
	e.POST("/signup", h.SignupPost)
	e.POST("/login", h.LoginPost)
	e.POST("/reset", h.ResetPost)
	e.POST("/auth/oauth", h.OAuthPost)
	e.POST("/logout", h.Logout)

	return &browser{t: t, e: e, cookies: make(map[string]*http.Cookie)}
}

func TestSignupGet_RendersDefaults(t *testing.T) {
	b := setupAuthTest(t, &stubProvider{})

	rec := b.do(http.MethodGet, "/signup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Create Account")
	assert.Contains(t, body, `value="Rajesh Kumar"`)
	assert.Contains(t, b.cookies, authsession.Name, "the view id is kept in the session cookie")
}

func TestSignupPost_ValidationMessage(t *testing.T) {
	p := &stubProvider{}
	b := setupAuthTest(t, p)

	rec := b.do(http.MethodPost, "/signup", url.Values{
		"name": {"Rajesh Kumar"}, "email": {"rajesh@farm.com"}, "password": {"short"}, "terms": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signup", rec.Header().Get(echo.HeaderLocation))

	body := b.do(http.MethodGet, "/signup", nil).Body.String()
	assert.Contains(t, body, "Password must be at least 8 characters long.")
	assert.Contains(t, body, "Create Account", "still on the sign-up form")
	assert.Zero(t, p.signups)
}

func TestSignupPost_SuccessMovesToLogin(t *testing.T) {
	p := &stubProvider{}
	b := setupAuthTest(t, p)

	rec := b.do(http.MethodPost, "/signup", url.Values{
		"name": {"Asha"}, "email": {"asha@farm.com"}, "password": {"password123"}, "terms": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body := b.do(http.MethodGet, "/signup", nil).Body.String()
	assert.Contains(t, body, "Account created successfully. Please log in.")
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, `value="asha@farm.com"`)
	assert.Equal(t, 1, p.signups)
}

func TestSwitchMode(t *testing.T) {
	b := setupAuthTest(t, &stubProvider{})

	rec := b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"reset"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, b.do(http.MethodGet, "/signup", nil).Body.String(), "Send Reset Link")

	rec = b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"admin"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostToInactiveFormKeepsItsState(t *testing.T) {
	p := &stubProvider{}
	b := setupAuthTest(t, p)
	b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"login"}})

	rec := b.do(http.MethodPost, "/signup", url.Values{
		"name": {"Mallory"}, "email": {"m@x.io"}, "password": {"password123"}, "terms": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, p.signups)

	b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"signup"}})
	body := b.do(http.MethodGet, "/signup", nil).Body.String()
	assert.Contains(t, body, `value="Rajesh Kumar"`)
	assert.Contains(t, body, `value="rajesh@farm.com"`)
	assert.NotContains(t, body, "Mallory")
	assert.NotContains(t, body, "m@x.io")
}

func TestLoginAndLogout(t *testing.T) {
	p := &stubProvider{}
	b := setupAuthTest(t, p)
	b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"login"}})

	b.do(http.MethodPost, "/login", url.Values{"email": {"rajesh@farm.com"}, "password": {"wrong"}})
	assert.Contains(t, b.do(http.MethodGet, "/signup", nil).Body.String(), "Invalid login credentials")

	rec := b.do(http.MethodPost, "/login", url.Values{"email": {"rajesh@farm.com"}, "password": {"password123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, b.do(http.MethodGet, "/signup", nil).Body.String(), "Logged in successfully.")

	rec = b.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"access-token"}, p.signedOut)
	assert.Contains(t, b.do(http.MethodGet, "/signup", nil).Body.String(), "You have been logged out.")

	b.do(http.MethodPost, "/logout", nil)
	assert.Len(t, p.signedOut, 1, "no token, no provider call")
}

func TestOAuthRoundTrip(t *testing.T) {
	p := &stubProvider{}
	p.exchange = func(code, verifier string) (*domain.Session, error) {
		if code != "code-1" || verifier != "verifier-1" {
			return nil, errors.New("bad exchange")
		}
		return &domain.Session{AccessToken: "oauth-token", User: domain.User{Email: "rajesh@farm.com"}}, nil
	}
	b := setupAuthTest(t, p)

	rec := b.do(http.MethodPost, "/auth/oauth", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://idp.example/authorize?provider=google", rec.Header().Get(echo.HeaderLocation))

	rec = b.do(http.MethodGet, "/?code=code-1", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get(echo.HeaderLocation))

	// The verifier is single use.
	rec = b.do(http.MethodGet, "/?code=code-1", nil)
	assert.Equal(t, "/signup", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, b.do(http.MethodGet, "/signup", nil).Body.String(), "Something went wrong with Google sign-in.")
}

func TestOAuth_HTMXAndResetMode(t *testing.T) {
	b := setupAuthTest(t, &stubProvider{})

	rec := b.do(http.MethodPost, "/auth/oauth", nil, "HX-Request", "true")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("HX-Redirect"))

	b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"reset"}})
	rec = b.do(http.MethodPost, "/auth/oauth", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLanding(t *testing.T) {
	b := setupAuthTest(t, &stubProvider{})

	rec := b.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Detect intrusions in seconds")

	rec = b.do(http.MethodGet, "/?error=access_denied&error_description=Access+denied", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, b.do(http.MethodGet, "/signup", nil).Body.String(), "Access denied")
}

func TestDoubleSubmissionConflict(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := &stubProvider{signIn: func(ctx context.Context) (*domain.Session, error) {
		close(started)
		<-release
		return &domain.Session{AccessToken: "t"}, nil
	}}
	b := setupAuthTest(t, p)
	b.do(http.MethodPost, "/signup/mode", url.Values{"mode": {"login"}})

	form := url.Values{"email": {"rajesh@farm.com"}, "password": {"password123"}}
	done := make(chan int, 1)
	go func() {
		done <- b.do(http.MethodPost, "/login", form).Code
	}()
	<-started

	rec := b.do(http.MethodPost, "/login", form, "HX-Request", "true")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "submission_in_flight")

	close(release)
	assert.Equal(t, http.StatusSeeOther, <-done)
}
