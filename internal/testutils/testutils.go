// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/khetguard/khetguard/internal/config"
	"github.com/khetguard/khetguard/internal/logging"
)

// TestEnv is the environment ConfigForTests starts from.
var TestEnv = map[string]string{
	"SERVER_ADDR":      "127.0.0.1:0",
	"APP_BASE_URL":     "http://localhost:8080",
	"SESSION_SECRET":   "a-very-secret-key-for-testing-!!",
	"SUPABASE_URL":     "http://127.0.0.1:54321",
	"SUPABASE_KEY":     "test-anon-key",
	"OAUTH_PROVIDER":   "google",
	"IDENTITY_TIMEOUT": "2s",
	"AUTH_VIEW_TTL":    "1h",
	"LOG_FORMAT":       "text",
	"LOG_LEVEL":        "debug",
	"TRACING_ENABLED":  "false",
}

// ConfigForTests sets TestEnv (with overrides applied) through t.Setenv and
// returns the parsed configuration. Tests using it cannot run in parallel.
func ConfigForTests(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()
	for k, v := range TestEnv {
		if o, ok := overrides[k]; ok {
			v = o
		}
		t.Setenv(k, v)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("failed to build test config: %v", err)
	}
	return cfg
}

// LogBuffer is a bytes.Buffer safe for concurrent writers.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// CaptureLogs replaces the default slog logger with a text logger writing to
// the returned buffer. The previous logger is restored when the test ends.
func CaptureLogs(t *testing.T) *LogBuffer {
	t.Helper()
	buf := &LogBuffer{}
	original := slog.Default()
	slog.SetDefault(logging.NewWithWriter(buf, "text", "debug"))
	t.Cleanup(func() { slog.SetDefault(original) })
	return buf
}
