package pages

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khetguard/khetguard/internal/authview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestAuthPage_Signup(t *testing.T) {
	out := render(t, AuthPage(authview.Snapshot{
		Mode:   authview.ModeSignup,
		Signup: authview.SignupForm{Name: "Rajesh Kumar", Email: "rajesh@farm.com", AcceptedTerms: true},
		Status: authview.Status{Error: authview.MsgWeakPassword},
	}))

	assert.Contains(t, out, `action="/signup"`)
	assert.Contains(t, out, "Sign up with Google")
	assert.Contains(t, out, `value="Rajesh Kumar"`)
	assert.Contains(t, out, "checked")
	assert.Contains(t, out, "Password must be at least 8 characters long.")
	assert.Contains(t, out, "Create Account")
	assert.NotContains(t, out, `action="/login"`, "only the active form is rendered")
	assert.NotContains(t, out, "Reset Password", "mode pills are hidden in signup")
}

func TestAuthPage_Login(t *testing.T) {
	out := render(t, AuthPage(authview.Snapshot{
		Mode:   authview.ModeLogin,
		Login:  authview.LoginForm{Email: "rajesh@farm.com"},
		Status: authview.Status{Success: authview.MsgSignupSuccess},
	}))

	assert.Contains(t, out, `action="/login"`)
	assert.Contains(t, out, "Continue with Google")
	assert.Contains(t, out, `value="rajesh@farm.com"`)
	assert.Contains(t, out, "Account created successfully. Please log in.")
	assert.Contains(t, out, "Forgot password?")
	assert.Contains(t, out, "Create one")
}

// paragraphs returns the inner HTML of every <p> element in out.
func paragraphs(out string) []string {
	var ps []string
	for {
		i := strings.Index(out, "<p")
		if i < 0 {
			return ps
		}
		out = out[i+2:]
		if out == "" || (out[0] != '>' && out[0] != ' ') {
			continue
		}
		end := strings.Index(out, "</p>")
		if end < 0 {
			return ps
		}
		ps = append(ps, out[:end])
		out = out[end+4:]
	}
}

func TestAuthPage_ModeSwitchFormsAreNotInParagraphs(t *testing.T) {
	for _, mode := range []authview.Mode{authview.ModeSignup, authview.ModeLogin, authview.ModeReset} {
		out := render(t, AuthPage(authview.Snapshot{Mode: mode}))

		assert.Contains(t, out, `action="/signup/mode"`, mode.String())
		for _, p := range paragraphs(out) {
			assert.NotContains(t, p, "<form", "%s: a form cannot sit inside <p>", mode)
		}
	}
}

func TestAuthPage_ResetHidesOAuth(t *testing.T) {
	out := render(t, AuthPage(authview.Snapshot{Mode: authview.ModeReset}))

	assert.Contains(t, out, `action="/reset"`)
	assert.Contains(t, out, "Send Reset Link")
	assert.NotContains(t, out, "/auth/oauth")
}

func TestAuthPage_LoadingDisablesSubmit(t *testing.T) {
	out := render(t, AuthPage(authview.Snapshot{Mode: authview.ModeReset, Status: authview.Status{Loading: true}}))

	assert.Contains(t, out, "Sending...")
	assert.Contains(t, out, `<button type="submit" disabled`)
}

func TestLandingPage(t *testing.T) {
	out := render(t, LandingPage())
	assert.Contains(t, out, "Detect intrusions in seconds, not minutes.")
	assert.Contains(t, out, `href="/signup"`)
}
