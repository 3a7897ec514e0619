// Package identity talks to the hosted authentication service (a GoTrue
// compatible REST API such as Supabase Auth).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/khetguard/khetguard/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Auth API endpoint paths.
const (
	signupPath    = "/auth/v1/signup"
	tokenPath     = "/auth/v1/token"
	recoverPath   = "/auth/v1/recover"
	authorizePath = "/auth/v1/authorize"
	logoutPath    = "/auth/v1/logout"
)

// Client is the identity provider client. It is created once at start-up and
// shared by every auth view; it holds no per-user state.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	tracer  trace.Tracer
	now     func() time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTracer sets the tracer used for provider spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a new Client. baseURL is the project URL and apiKey its public key.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	apiKey = strings.TrimSpace(apiKey)
	if baseURL == "" {
		return nil, errors.New("identity: base URL is required")
	}
	if apiKey == "" {
		return nil, errors.New("identity: API key is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("identity: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		tracer:  otel.Tracer("khetguard/identity"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ domain.IdentityProvider = (*Client)(nil)

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     domain.Profile `json:"data"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type pkceGrantRequest struct {
	AuthCode     string `json:"auth_code"`
	CodeVerifier string `json:"code_verifier"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

// SignUp registers a new account. When the project requires email
// confirmation the returned session carries only the user.
func (c *Client) SignUp(ctx context.Context, email, password string, profile domain.Profile, redirectTo string) (*domain.Session, error) {
	q := url.Values{}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	var resp sessionResponse
	err := c.do(ctx, "sign_up", http.MethodPost, signupPath, q, "", signUpRequest{
		Email:    email,
		Password: password,
		Data:     profile,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toSession(c.now()), nil
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	q := url.Values{"grant_type": {"password"}}
	var resp sessionResponse
	if err := c.do(ctx, "sign_in_with_password", http.MethodPost, tokenPath, q, "", passwordGrantRequest{
		Email:    email,
		Password: password,
	}, &resp); err != nil {
		return nil, err
	}
	return resp.toSession(c.now()), nil
}

// SendPasswordReset asks the provider to email a recovery link that lands on redirectTo.
func (c *Client) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	q := url.Values{}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return c.do(ctx, "send_password_reset", http.MethodPost, recoverPath, q, "", recoverRequest{Email: email}, nil)
}

// SignInWithOAuth builds the provider authorize URL for a PKCE flow. No
// network call is made; the browser performs the redirect.
func (c *Client) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (*domain.OAuthRedirect, error) {
	_, span := c.tracer.Start(ctx, "identity.sign_in_with_oauth", trace.WithAttributes(
		attribute.String("identity.oauth_provider", provider),
	))
	defer span.End()

	if strings.TrimSpace(provider) == "" {
		err := &domain.ProviderError{Op: "sign_in_with_oauth", Message: "No OAuth provider configured."}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	p := newPKCE()
	q := url.Values{
		"provider":              {provider},
		"code_challenge":        {p.Challenge},
		"code_challenge_method": {"s256"},
	}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return &domain.OAuthRedirect{
		URL:          c.baseURL + authorizePath + "?" + q.Encode(),
		CodeVerifier: p.Verifier,
	}, nil
}

// ExchangeCodeForSession completes a PKCE redirect.
func (c *Client) ExchangeCodeForSession(ctx context.Context, code, codeVerifier string) (*domain.Session, error) {
	q := url.Values{"grant_type": {"pkce"}}
	var resp sessionResponse
	if err := c.do(ctx, "exchange_code", http.MethodPost, tokenPath, q, "", pkceGrantRequest{
		AuthCode:     code,
		CodeVerifier: codeVerifier,
	}, &resp); err != nil {
		return nil, err
	}
	return resp.toSession(c.now()), nil
}

// SignOut revokes the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return c.do(ctx, "sign_out", http.MethodPost, logoutPath, nil, accessToken, nil, nil)
}

// do sends one JSON request. bearer overrides the API key in the
// Authorization header when a user token is required.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, bearer string, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "identity."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("identity.path", path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.ProviderError{Op: op, Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &domain.ProviderError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		perr := decodeError(op, resp.StatusCode, raw)
		slog.Warn("Identity provider rejected request", "op", op, "status", resp.StatusCode, "code", perr.Code)
		return perr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ProviderError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// transportMessage returns user-facing text for a failed round trip. The
// request URL and dialed address are left out; only the network reason is kept.
func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return "The authentication service did not respond in time."
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("Network error: the authentication service could not be found (%s).", dnsErr.Err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Err != nil {
		return fmt.Sprintf("Network error: could not reach the authentication service (%s).", opErr.Err)
	}
	return "Network error: could not reach the authentication service."
}
