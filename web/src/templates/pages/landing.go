package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

type feature struct {
	title string
	body  string
}

var landingFeatures = []feature{
	{"All your intrusion signals in one dashboard.", "Connect cameras, sensors, and geofences instantly."},
	{"Built for real-world perimeters.", "Works over Wi-Fi with 4G and GSM fallback for remote fields."},
	{"Act on what matters.", "Trigger sirens, notify your team, and mark false alarms so the system learns."},
}

// LandingPage is the public marketing page.
func LandingPage() g.Node {
	return h.Div(h.Class("mx-auto max-w-6xl px-4 py-16"),
		h.Section(h.Class("grid gap-10 md:grid-cols-2 md:items-center"),
			h.Div(
				h.H1(h.Class("text-4xl font-extrabold tracking-tight text-slate-900 md:text-5xl"),
					g.Text("Detect intrusions in seconds, not minutes.")),
				h.P(h.Class("mt-4 text-slate-600"),
					g.Text("Real-time monitoring for farms, warehouses, and remote sites.")),
				h.Div(h.Class("mt-8 flex gap-3"),
					h.A(h.Href("/signup"), h.Class("rounded-full bg-emerald-500 px-6 py-2.5 text-sm font-semibold text-white hover:bg-emerald-600"), g.Text("Start")),
					h.A(h.Href("/home"), h.Class("rounded-full border border-slate-300 px-6 py-2.5 text-sm font-semibold text-slate-800 hover:bg-slate-50"), g.Text("Watch Demo")),
				),
			),
			h.Div(h.Class("rounded-3xl bg-white p-6 shadow-xl"),
				h.Div(h.Class("text-sm font-semibold text-emerald-700"), g.Text("System Armed")),
				h.Div(h.Class("mt-4 grid grid-cols-3 gap-3 text-center text-xs"),
					h.Button(h.Class("rounded-full bg-amber-500 px-4 py-2 font-semibold text-white"), g.Text("Trigger Siren")),
					h.Button(h.Class("rounded-full bg-emerald-500 px-4 py-2 font-semibold text-white"), g.Text("Call Neighbor")),
					h.Button(h.Class("rounded-full bg-rose-500 px-4 py-2 font-semibold text-white"), g.Text("SOS")),
				),
			),
		),
		h.Section(h.Class("mt-16 grid gap-6 md:grid-cols-3"),
			g.Map(landingFeatures, func(f feature) g.Node {
				return h.Div(h.Class("rounded-2xl bg-white p-6 shadow"),
					h.H2(h.Class("text-lg font-semibold"), g.Text(f.title)),
					h.P(h.Class("mt-2 text-sm text-slate-600"), g.Text(f.body)),
				)
			}),
		),
		h.Footer(h.Class("mt-16 border-t border-slate-200 pt-6 text-sm text-slate-500"),
			g.Text("KhetGuard. Intrusion detection for the real world.")),
	)
}
