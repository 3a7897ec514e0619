package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const testKey = "anon-key"

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   map[string]any
}

// newTestServer answers every request with status and body and records what it saw.
func newTestServer(t *testing.T, status int, body string) (*Client, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone()}
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		seen = append(seen, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", testKey)
	require.NoError(t, err)
	return c, &seen
}

func signedToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := tok.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return s
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", testKey)
	assert.Error(t, err)

	_, err = New("https://project.supabase.co", "  ")
	assert.Error(t, err)

	_, err = New("not a url", testKey)
	assert.Error(t, err)
}

func TestSignUp(t *testing.T) {
	c, seen := newTestServer(t, http.StatusOK, `{"id":"u-1","email":"rajesh@farm.com","user_metadata":{"full_name":"Rajesh Kumar"}}`)

	sess, err := c.SignUp(context.Background(), "rajesh@farm.com", "password123",
		domain.Profile{FullName: "Rajesh Kumar"}, "http://localhost:8080/reset-password")
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/auth/v1/signup", req.Path)
	assert.Equal(t, "http://localhost:8080/reset-password", req.Query.Get("redirect_to"))
	assert.Equal(t, testKey, req.Header.Get("apikey"))
	assert.Equal(t, "Bearer "+testKey, req.Header.Get("Authorization"))
	assert.Equal(t, "rajesh@farm.com", req.Body["email"])
	assert.Equal(t, map[string]any{"full_name": "Rajesh Kumar"}, req.Body["data"])

	assert.Empty(t, sess.AccessToken, "confirmation pending means no tokens")
	assert.Equal(t, "u-1", sess.User.ID)
	assert.Equal(t, "Rajesh Kumar", sess.User.FullName)
}

func TestSignInWithPassword(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, "rajesh@farm.com", exp)
	c, seen := newTestServer(t, http.StatusOK, `{"access_token":"`+token+`","token_type":"bearer","refresh_token":"r-1"}`)

	sess, err := c.SignInWithPassword(context.Background(), "rajesh@farm.com", "password123")
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, "/auth/v1/token", req.Path)
	assert.Equal(t, "password", req.Query.Get("grant_type"))
	assert.Equal(t, "password123", req.Body["password"])

	assert.Equal(t, "r-1", sess.RefreshToken)
	assert.Equal(t, "user-123", sess.User.ID, "subject comes from the token claims")
	assert.Equal(t, "rajesh@farm.com", sess.User.Email)
	assert.True(t, sess.ExpiresAt.Equal(exp))
	assert.False(t, sess.Expired(time.Now()))
}

func TestSignInWithPassword_ProviderError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)

	_, err := c.SignInWithPassword(context.Background(), "rajesh@farm.com", "wrong-password")
	require.Error(t, err)

	var perr *domain.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadRequest, perr.Status)
	assert.Equal(t, "Invalid login credentials", perr.Message)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Equal(t, "Invalid login credentials", domain.UserMessage(err))
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		target  error
	}{
		{"msg field", 422, `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`, "User already registered", domain.ErrUserAlreadyExists},
		{"rate limited", 429, `{"message":"Email rate limit exceeded"}`, "Email rate limit exceeded", domain.ErrRateLimited},
		{"unparseable body", 500, `<html>oops</html>`, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := decodeError("op", tt.status, []byte(tt.body))
			assert.Equal(t, tt.message, perr.Message)
			if tt.target != nil {
				assert.True(t, errors.Is(perr, tt.target))
			}
		})
	}
}

func TestSendPasswordReset(t *testing.T) {
	c, seen := newTestServer(t, http.StatusOK, `{}`)

	err := c.SendPasswordReset(context.Background(), "rajesh@farm.com", "http://localhost:8080/reset-password")
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, "/auth/v1/recover", req.Path)
	assert.Equal(t, "http://localhost:8080/reset-password", req.Query.Get("redirect_to"))
	assert.Equal(t, "rajesh@farm.com", req.Body["email"])
}

func TestSignInWithOAuth(t *testing.T) {
	c, seen := newTestServer(t, http.StatusOK, `{}`)

	redirect, err := c.SignInWithOAuth(context.Background(), domain.OAuthGoogle, "http://localhost:8080/")
	require.NoError(t, err)
	assert.Empty(t, *seen, "building the authorize URL makes no request")

	u, err := url.Parse(redirect.URL)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "google", u.Query().Get("provider"))
	assert.Equal(t, "http://localhost:8080/", u.Query().Get("redirect_to"))
	assert.Equal(t, "s256", u.Query().Get("code_challenge_method"))
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(redirect.CodeVerifier), u.Query().Get("code_challenge"))

	_, err = c.SignInWithOAuth(context.Background(), "", "http://localhost:8080/")
	assert.Error(t, err)
}

func TestExchangeCodeForSession(t *testing.T) {
	c, seen := newTestServer(t, http.StatusOK, `{"access_token":"not-a-jwt","expires_in":3600,"user":{"id":"u-9","email":"a@farm.com"}}`)

	before := time.Now()
	sess, err := c.ExchangeCodeForSession(context.Background(), "code-1", "verifier-1")
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, "pkce", req.Query.Get("grant_type"))
	assert.Equal(t, "code-1", req.Body["auth_code"])
	assert.Equal(t, "verifier-1", req.Body["code_verifier"])

	assert.Equal(t, "a@farm.com", sess.User.Email)
	assert.True(t, sess.ExpiresAt.After(before.Add(59*time.Minute)))
}

func TestSignOut(t *testing.T) {
	c, seen := newTestServer(t, http.StatusNoContent, ``)

	require.NoError(t, c.SignOut(context.Background(), ""))
	assert.Empty(t, *seen)

	require.NoError(t, c.SignOut(context.Background(), "user-token"))
	require.Len(t, *seen, 1)
	assert.Equal(t, "/auth/v1/logout", (*seen)[0].Path)
	assert.Equal(t, "Bearer user-token", (*seen)[0].Header.Get("Authorization"))
}

func TestTransportFailureHasNetworkMessage(t *testing.T) {
	c, err := New("http://127.0.0.1:1", testKey, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.SignInWithPassword(context.Background(), "a@farm.com", "password123")
	require.Error(t, err)
	msg := domain.UserMessage(err)
	assert.True(t, strings.HasPrefix(msg, "Network error"), msg)
	assert.NotContains(t, msg, "127.0.0.1")
	assert.NotContains(t, msg, tokenPath)
}

func TestTransportMessage(t *testing.T) {
	refused := &url.Error{Op: "Post", URL: "http://127.0.0.1:1/auth/v1/token", Err: &net.OpError{
		Op: "dial", Net: "tcp",
		Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1},
		Err:  os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}}
	unknownHost := &url.Error{Op: "Post", URL: "http://auth.invalid/auth/v1/token", Err: &net.OpError{
		Op: "dial", Net: "tcp",
		Err: &net.DNSError{Err: "no such host", Name: "auth.invalid", IsNotFound: true},
	}}
	timeout := &url.Error{Op: "Post", URL: "http://auth.example/auth/v1/token", Err: context.DeadlineExceeded}
	canceled := &url.Error{Op: "Post", URL: "http://auth.example/auth/v1/token", Err: context.Canceled}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"connection refused", refused, "Network error: could not reach the authentication service (connect: connection refused)."},
		{"unknown host", unknownHost, "Network error: the authentication service could not be found (no such host)."},
		{"timeout", timeout, "The authentication service did not respond in time."},
		{"other", canceled, "Network error: could not reach the authentication service."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transportMessage(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "auth/v1")
		})
	}
}
