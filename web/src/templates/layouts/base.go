// Package layouts holds the page shells shared by every KhetGuard page.
package layouts

import (
	"github.com/khetguard/khetguard/internal/domain"
	"github.com/khetguard/khetguard/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const (
	tailwindSrc = "https://cdn.tailwindcss.com"
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
)

// Page describes one rendered page.
type Page struct {
	Title   string
	User    *domain.User
	Flashes view.FlashData
	// Bare drops the navigation bar (used by the auth page).
	Bare bool
}

// Base wraps body in the document shell: head assets, navigation and flash banner.
func Base(p Page, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(p.Title),
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Script(h.Src(tailwindSrc)),
			h.Script(h.Src(htmxSrc), h.Defer()),
		},
		Body: []g.Node{
			h.Class("min-h-screen bg-slate-100 text-slate-900"),
			hx.Boost("true"),
			g.If(!p.Bare, navBar(p.User)),
			view.Embed(view.FlashBanner(p.Flashes)),
			h.Main(body...),
		},
	})
}

func navBar(user *domain.User) g.Node {
	return h.Header(
		h.Class("border-b border-slate-200 bg-white"),
		h.Nav(
			h.Class("mx-auto flex max-w-6xl items-center justify-between px-4 py-3"),
			h.A(h.Href("/"), h.Class("flex items-center gap-2 text-lg font-semibold"),
				h.Span(h.Class("flex h-8 w-8 items-center justify-center rounded-xl bg-emerald-500 text-white"), g.Text("K")),
				g.Text("KhetGuard"),
			),
			h.Div(h.Class("flex items-center gap-4 text-sm"),
				navLink("/home", "Dashboard"),
				navLink("/camera", "Feeds"),
				navLink("/report", "Reports"),
				g.Iff(user != nil, func() g.Node {
					return h.Form(h.Method("post"), h.Action("/logout"), h.Class("flex items-center gap-3"),
						h.Span(h.Class("text-slate-500"), g.Text(user.Email)),
						h.Button(h.Type("submit"), h.Class("rounded-full px-4 py-1.5 hover:bg-slate-100"), g.Text("Log out")),
					)
				}),
				g.If(user == nil,
					h.A(h.Href("/signup"), h.Class("rounded-full bg-emerald-500 px-4 py-1.5 font-semibold text-white"), g.Text("Signup")),
				),
			),
		),
	)
}

func navLink(href, label string) g.Node {
	return h.A(h.Href(href), h.Class("text-slate-700 hover:text-emerald-700"), g.Text(label))
}
