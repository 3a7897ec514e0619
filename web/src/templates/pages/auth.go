// Package pages holds the full-page gomponents views.
package pages

import (
	"github.com/khetguard/khetguard/internal/authview"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	inputClass   = "mt-1 w-full rounded-lg border border-slate-200 px-3 py-2 text-sm focus:border-emerald-500 focus:outline-none"
	labelClass   = "block text-xs font-medium text-slate-700"
	primaryClass = "w-full rounded-lg bg-emerald-500 px-4 py-2.5 text-sm font-semibold text-white hover:bg-emerald-600 disabled:cursor-not-allowed disabled:opacity-70"
	linkClass    = "font-medium text-emerald-700 hover:underline"
)

// AuthPage renders the sign-up, login or reset form for s. Passwords are
// never echoed back.
func AuthPage(s authview.Snapshot) g.Node {
	return h.Div(
		h.Class("flex min-h-screen items-center justify-center px-4 py-10"),
		h.Div(
			h.ID("auth-card"),
			h.Class("w-full max-w-md rounded-3xl border border-slate-200 bg-white shadow-xl"),
			// Boosted posts answer with the whole page; only the card is swapped.
			hx.Target("#auth-card"),
			hx.Select("#auth-card"),
			hx.Swap("outerHTML"),
			h.Div(
				h.Class("px-8 pt-8 pb-10"),
				brand(),
				g.If(s.Mode.AllowsOAuth(), oauthButton(s)),
				g.If(s.Mode != authview.ModeSignup, modePills(s.Mode)),
				activeForm(s),
				footer(s.Mode),
			),
		),
	)
}

func brand() g.Node {
	return h.Div(h.Class("mb-6 flex items-center gap-2"),
		h.Div(h.Class("flex h-9 w-9 items-center justify-center rounded-xl bg-emerald-500 text-white"), g.Text("K")),
		h.Span(h.Class("text-lg font-semibold text-slate-900"), g.Text("KhetGuard")),
	)
}

// submitting disables the form's buttons during an htmx request.
func submitting() g.Node {
	return g.Attr("hx-disabled-elt", "find button")
}

func oauthButton(s authview.Snapshot) g.Node {
	label := "Continue with Google"
	if s.Mode == authview.ModeSignup {
		label = "Sign up with Google"
	}
	return g.Group{
		h.Form(h.Method("post"), h.Action("/auth/oauth"), submitting(),
			h.Button(
				h.Type("submit"),
				g.If(s.Status.Loading, h.Disabled()),
				h.Class("flex w-full items-center justify-center gap-2 rounded-lg border border-slate-200 bg-white px-4 py-2.5 text-sm font-medium text-slate-700 shadow-sm hover:bg-slate-50 disabled:cursor-not-allowed disabled:opacity-70"),
				h.Span(h.Class("text-lg leading-none text-sky-500"), g.Text("G")),
				h.Span(g.Text(label)),
			),
		),
		h.Div(h.Class("my-6 flex items-center text-[11px] text-slate-400"),
			h.Div(h.Class("h-px flex-1 bg-slate-200")),
			h.Span(h.Class("px-3"), g.Text("Or continue with email")),
			h.Div(h.Class("h-px flex-1 bg-slate-200")),
		),
	}
}

// switchButton posts a mode change.
func switchButton(mode authview.Mode, class string, children ...g.Node) g.Node {
	return h.Form(h.Method("post"), h.Action("/signup/mode"), h.Class("inline"),
		h.Input(h.Type("hidden"), h.Name("mode"), h.Value(mode.String())),
		h.Button(append([]g.Node{h.Type("submit"), h.Class(class)}, children...)...),
	)
}

func modePills(active authview.Mode) g.Node {
	pill := func(m authview.Mode, label string) g.Node {
		class := "rounded-full px-4 py-1.5 text-slate-600 hover:text-slate-900"
		if m == active {
			class = "rounded-full px-4 py-1.5 bg-white text-slate-900 shadow-sm"
		}
		return switchButton(m, class, g.Text(label))
	}
	return h.Div(h.Class("mb-4 flex justify-center"),
		h.Div(h.Class("inline-flex rounded-full bg-slate-100 p-1 text-xs font-medium"),
			pill(authview.ModeLogin, "Login"),
			pill(authview.ModeReset, "Reset Password"),
		),
	)
}

func activeForm(s authview.Snapshot) g.Node {
	switch s.Mode {
	case authview.ModeLogin:
		return loginForm(s)
	case authview.ModeReset:
		return resetForm(s)
	default:
		return signupForm(s)
	}
}

func field(id, label, typ, name, value, placeholder string) g.Node {
	return h.Div(
		h.Label(h.For(id), h.Class(labelClass), g.Text(label)),
		h.Input(h.ID(id), h.Type(typ), h.Name(name), h.Value(value), h.Placeholder(placeholder), h.Class(inputClass)),
	)
}

func messages(st authview.Status) g.Node {
	return g.Group{
		g.If(st.Error != "", h.P(h.Role("alert"), h.Class("rounded-lg bg-rose-50 px-3 py-2 text-xs text-rose-700"), g.Text(st.Error))),
		g.If(st.Success != "", h.P(h.Role("status"), h.Class("rounded-lg bg-emerald-50 px-3 py-2 text-xs text-emerald-700"), g.Text(st.Success))),
	}
}

func submit(st authview.Status, idle, busy string) g.Node {
	label := idle
	if st.Loading {
		label = busy
	}
	return h.Button(h.Type("submit"), g.If(st.Loading, h.Disabled()), h.Class(primaryClass), g.Text(label))
}

func signupForm(s authview.Snapshot) g.Node {
	f := s.Signup
	return h.Form(h.ID("signup-form"), h.Method("post"), h.Action("/signup"), h.Class("space-y-4"), submitting(),
		field("signup-name", "Full name", "text", "name", f.Name, "Your name"),
		field("signup-email", "Email", "email", "email", f.Email, "you@company.com"),
		h.Div(
			field("signup-password", "Password", "password", "password", "", "Create a strong password"),
			h.P(h.Class("mt-1 text-[11px] text-slate-500"), g.Textf("Must be at least %d characters.", authview.MinPasswordLength)),
		),
		h.Label(h.Class("flex items-start gap-2 text-xs text-slate-600"),
			h.Input(h.Type("checkbox"), h.Name("terms"), h.Value("on"), g.If(f.AcceptedTerms, h.Checked())),
			h.Span(g.Text("I agree to the "), h.A(h.Href("#terms"), h.Class(linkClass), g.Text("Terms")),
				g.Text(" and "), h.A(h.Href("#privacy"), h.Class(linkClass), g.Text("Privacy Policy"))),
		),
		messages(s.Status),
		submit(s.Status, "Create Account", "Processing..."),
	)
}

func loginForm(s authview.Snapshot) g.Node {
	return g.Group{
		h.Form(h.ID("login-form"), h.Method("post"), h.Action("/login"), h.Class("space-y-4"), submitting(),
			field("login-email", "Email", "email", "email", s.Login.Email, "you@company.com"),
			field("login-password", "Password", "password", "password", "", "Enter your password"),
			messages(s.Status),
			submit(s.Status, "Login", "Processing..."),
		),
		h.Div(h.Class("mt-2 text-right text-xs"),
			switchButton(authview.ModeReset, linkClass, g.Text("Forgot password?")),
		),
	}
}

func resetForm(s authview.Snapshot) g.Node {
	return h.Form(h.ID("reset-form"), h.Method("post"), h.Action("/reset"), h.Class("space-y-4"), submitting(),
		h.P(h.Class("text-xs text-slate-500"),
			g.Text("Enter the email address associated with your account and we’ll send you a link to reset your password.")),
		field("reset-email", "Email", "email", "email", s.Reset.Email, "you@company.com"),
		messages(s.Status),
		submit(s.Status, "Send Reset Link", "Sending..."),
	)
}

func footer(mode authview.Mode) g.Node {
	if mode == authview.ModeSignup {
		return h.Div(h.Class("mt-6 text-center text-xs text-slate-500"),
			g.Text("Already have an account? "), switchButton(authview.ModeLogin, linkClass, g.Text("Log in")))
	}
	return h.Div(h.Class("mt-6 text-center text-xs text-slate-500"),
		g.Text("Don't have an account? "), switchButton(authview.ModeSignup, linkClass, g.Text("Create one")))
}
