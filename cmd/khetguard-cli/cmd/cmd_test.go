package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		envFile = ""
		topicsFormat = "table"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "KhetGuard CLI v"+version)
}

func TestTopics(t *testing.T) {
	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "auth.account.created")
	assert.Contains(t, out, "auth.oauth.started")

	out, err = run(t, "topics", "--format", "json")
	require.NoError(t, err)
	var list []topicInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 4)

	_, err = run(t, "topics", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigCheck(t *testing.T) {
	for _, k := range []string{"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_ANON_KEY", "SESSION_SECRET"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte(
		"SUPABASE_URL=https://project.supabase.co\n"+
			"SUPABASE_ANON_KEY=anon-key-123456\n"+
			"SESSION_SECRET=0123456789abcdef0123456789abcdef\n"), 0o600))
	// godotenv.Load does not override variables that already exist.
	t.Cleanup(func() {
		for _, k := range []string{"SUPABASE_URL", "SUPABASE_ANON_KEY", "SESSION_SECRET"} {
			_ = os.Unsetenv(k)
		}
	})

	out, err := run(t, "config", "check", "--env-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration OK")
	assert.Contains(t, out, "https://project.supabase.co")
	assert.Contains(t, out, "anon********")
	assert.NotContains(t, out, "anon-key-123456")
	assert.NotContains(t, out, "0123456789abcdef0123456789abcdef")
}

func TestConfigCheck_Missing(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	_, err := run(t, "config", "check", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
