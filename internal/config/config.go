package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrMissingConfig is returned when a required setting is absent or blank.
var ErrMissingConfig = errors.New("missing required configuration")

// Provider is the read-only view of the configuration handed to the rest of the app.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetIdentityURL() string
	GetIdentityKey() string
	GetOAuthProvider() string
	GetIdentityTimeout() time.Duration
	GetAuthViewTTL() time.Duration
	GetLogFormat() string
	GetLogLevel() string
	GetTracing() TracingConfig
}

// TracingConfig holds configuration for OpenTelemetry tracing.
type TracingConfig struct {
	Enabled     bool   `env:"TRACING_ENABLED" envDefault:"false"`
	ServiceName string `env:"TRACING_SERVICE_NAME" envDefault:"khetguard-web"`
	ZipkinURL   string `env:"TRACING_ZIPKIN_URL" envDefault:"http://localhost:9411/api/v2/spans" validate:"omitempty,url"`
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string `env:"SERVER_ADDR" envDefault:":8080"`
	AppBaseURL    string `env:"APP_BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	SessionSecret string `env:"SESSION_SECRET" validate:"required,min=32"`

	// IdentityURL and the keys point at the hosted auth service (GoTrue API).
	IdentityURL     string        `env:"SUPABASE_URL" validate:"required,url"`
	IdentityKey     string        `env:"SUPABASE_KEY"`
	IdentityAnonKey string        `env:"SUPABASE_ANON_KEY"`
	OAuthProvider   string        `env:"OAUTH_PROVIDER" envDefault:"google" validate:"required"`
	IdentityTimeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"15s" validate:"gt=0"`

	AuthViewTTL time.Duration `env:"AUTH_VIEW_TTL" envDefault:"30m" validate:"gt=0"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	Tracing TracingConfig
}

// hints maps struct fields to the message shown when they are missing.
var hints = map[string]string{
	"IdentityURL":   "SUPABASE_URL is not set. Add it to your .env (SUPABASE_URL=...) and restart the server.",
	"SessionSecret": "SESSION_SECRET must be set to a random value of at least 32 characters.",
	"AppBaseURL":    "APP_BASE_URL must be the absolute origin of this application, e.g. https://khetguard.example.",
}

// New loads .env (if present) and the environment, then validates the result.
// It returns an error describing the first missing or malformed value.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.IdentityURL = strings.TrimRight(strings.TrimSpace(c.IdentityURL), "/")
	c.IdentityKey = strings.TrimSpace(c.IdentityKey)
	c.IdentityAnonKey = strings.TrimSpace(c.IdentityAnonKey)
	c.AppBaseURL = strings.TrimRight(strings.TrimSpace(c.AppBaseURL), "/")
	if c.IdentityKey == "" {
		c.IdentityKey = c.IdentityAnonKey
	}
}

// Validate checks required values and formats.
func (c *Config) Validate() error {
	if c.IdentityURL == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, hints["IdentityURL"])
	}
	if c.IdentityKey == "" {
		return fmt.Errorf("%w: SUPABASE_KEY or SUPABASE_ANON_KEY is not set. Add your anon key to .env and restart the server.", ErrMissingConfig)
	}

	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		if hint, ok := hints[fe.StructField()]; ok {
			return fmt.Errorf("%w: %s", ErrMissingConfig, hint)
		}
		return fmt.Errorf("%w: %s", ErrMissingConfig, fe.Namespace())
	}
	return fmt.Errorf("invalid configuration: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
}

// Redacted returns a printable summary with secrets masked.
func (c *Config) Redacted() map[string]string {
	return map[string]string{
		"SERVER_ADDR":      c.ServerAddr,
		"APP_BASE_URL":     c.AppBaseURL,
		"SUPABASE_URL":     c.IdentityURL,
		"SUPABASE_KEY":     mask(c.IdentityKey),
		"SESSION_SECRET":   mask(c.SessionSecret),
		"OAUTH_PROVIDER":   c.OAuthProvider,
		"IDENTITY_TIMEOUT": c.IdentityTimeout.String(),
		"AUTH_VIEW_TTL":    c.AuthViewTTL.String(),
		"LOG_FORMAT":       c.LogFormat,
		"LOG_LEVEL":        c.LogLevel,
		"TRACING_ENABLED":  fmt.Sprint(c.Tracing.Enabled),
	}
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", 8)
}

func (c *Config) GetServerAddr() string             { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string             { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string          { return c.SessionSecret }
func (c *Config) GetIdentityURL() string            { return c.IdentityURL }
func (c *Config) GetIdentityKey() string            { return c.IdentityKey }
func (c *Config) GetOAuthProvider() string          { return c.OAuthProvider }
func (c *Config) GetIdentityTimeout() time.Duration { return c.IdentityTimeout }
func (c *Config) GetAuthViewTTL() time.Duration     { return c.AuthViewTTL }
func (c *Config) GetLogFormat() string              { return c.LogFormat }
func (c *Config) GetLogLevel() string               { return c.LogLevel }
func (c *Config) GetTracing() TracingConfig         { return c.Tracing }
