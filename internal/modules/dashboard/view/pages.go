// Package view renders the dashboard pages from the mock farm fixture.
package view

import (
	"fmt"
	"time"

	"github.com/khetguard/khetguard/internal/domain"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const cardClass = "rounded-2xl bg-white p-5 shadow"

var actionColors = map[string]string{
	"amber":   "bg-amber-500 hover:bg-amber-600",
	"emerald": "bg-emerald-500 hover:bg-emerald-600",
	"sky":     "bg-sky-500 hover:bg-sky-600",
	"rose":    "bg-rose-500 hover:bg-rose-600",
}

var alertColors = map[string]string{
	"Human":   "bg-rose-100 text-rose-700",
	"Animal":  "bg-amber-100 text-amber-700",
	"Vehicle": "bg-sky-100 text-sky-700",
}

// HomePage is the farm overview.
func HomePage(user *domain.User, f Fixture, activity []Activity) g.Node {
	greeting := "Welcome to KhetGuard"
	if user != nil {
		name := user.FullName
		if name == "" {
			name = user.Email
		}
		greeting = "Welcome back, " + name
	}
	return h.Div(h.Class("mx-auto max-w-6xl space-y-6 px-4 py-8"),
		h.H1(h.Class("text-2xl font-bold"), g.Text(greeting)),
		h.Section(h.ID("status"), h.Class("grid gap-4 md:grid-cols-4"),
			g.Map(f.Status, func(s Stat) g.Node {
				return h.Div(h.Class(cardClass),
					h.Div(h.Class("text-xs text-slate-500"), g.Text(s.Label)),
					h.Div(h.Class("mt-1 text-xl font-semibold"), g.Text(s.Value)),
				)
			}),
		),
		h.Section(h.ID("quick-actions"), h.Class("flex flex-wrap gap-3"),
			g.Map(f.QuickActions, func(a QuickAction) g.Node {
				return h.Button(h.Type("button"),
					h.Class("rounded-full px-5 py-2 text-sm font-semibold text-white "+actionColors[a.Color]),
					g.Text(a.Label))
			}),
		),
		h.Div(h.Class("grid gap-6 md:grid-cols-3"),
			h.Section(h.ID("alerts"), h.Class(cardClass+" md:col-span-2"),
				h.H2(h.Class("mb-3 font-semibold"), g.Text("Recent Alerts")),
				h.Ul(h.Class("divide-y divide-slate-100"), g.Map(f.Alerts, alertRow)),
			),
			h.Section(h.ID("network"), h.Class(cardClass),
				h.H2(h.Class("mb-3 font-semibold"), g.Text("Network")),
				g.Map(f.Network, networkRow),
			),
		),
		h.Section(h.ID("devices"), h.Class("grid gap-6 md:grid-cols-2"),
			g.Map(f.Devices, deviceCard),
		),
		activityCard(activity),
	)
}

func alertRow(a Alert) g.Node {
	return h.Li(h.Class("flex items-center justify-between py-3"),
		h.Div(
			h.Div(h.Class("text-sm font-medium"), g.Text(a.Title)),
			h.Div(h.Class("text-xs text-slate-500"), g.Text(a.Time)),
		),
		h.Span(h.Class("rounded-full px-3 py-1 text-xs font-semibold "+alertColors[a.Kind]),
			g.Textf("%s %d%%", a.Kind, a.Confidence)),
	)
}

func networkRow(l Link) g.Node {
	return h.Div(h.Class("mb-3"),
		h.Div(h.Class("flex justify-between text-sm"),
			h.Span(g.Text(l.Label)),
			h.Span(h.Class("text-slate-500"), g.Text(l.Value)),
		),
		h.Div(h.Class("mt-1 h-2 rounded-full bg-slate-100"),
			h.Div(h.Class("h-2 rounded-full bg-emerald-500"), h.Style(fmt.Sprintf("width: %d%%", l.Percent))),
		),
	)
}

func deviceCard(d DeviceGroup) g.Node {
	return h.Div(h.Class(cardClass),
		h.Div(h.Class("mb-3 flex justify-between"),
			h.H2(h.Class("font-semibold"), g.Text(d.Title)),
			h.Span(h.Class("text-xs font-semibold text-emerald-700"), g.Text(d.Status)),
		),
		h.Ul(h.Class("space-y-2 text-sm"),
			g.Map(d.Items, func(s Stat) g.Node {
				return h.Li(h.Class("flex justify-between"),
					h.Span(g.Text(s.Label)),
					h.Span(h.Class("text-slate-500"), g.Text(s.Value)),
				)
			}),
		),
	)
}

func activityCard(activity []Activity) g.Node {
	return h.Section(h.ID("activity"), h.Class(cardClass),
		h.H2(h.Class("mb-3 font-semibold"), g.Text("Account activity")),
		g.If(len(activity) == 0, h.P(h.Class("text-sm text-slate-500"), g.Text("No account activity yet."))),
		g.If(len(activity) > 0,
			h.Ul(h.Class("space-y-2 text-sm"),
				g.Map(activity, func(a Activity) g.Node {
					return h.Li(h.Class("flex justify-between"),
						h.Span(g.Text(a.What), g.If(a.Email != "", h.Span(h.Class("text-slate-500"), g.Text(" · "+a.Email)))),
						g.El("time", g.Attr("datetime", a.At.UTC().Format(time.RFC3339)), h.Class("text-slate-400"),
							g.Text(a.At.Format("Jan 2 15:04"))),
					)
				}),
			),
		),
	)
}

// Camera filters accepted by CameraPage.
const (
	FilterAll       = "all"
	FilterOnline    = "online"
	FilterFavorites = "favorites"
)

// FilterCameras returns the cameras matching filter; unknown filters match all.
func FilterCameras(cameras []Camera, filter string) []Camera {
	var out []Camera
	for _, cam := range cameras {
		switch {
		case filter == FilterOnline && !cam.Online:
		case filter == FilterFavorites && !cam.Favorite:
		default:
			out = append(out, cam)
		}
	}
	return out
}

// CameraPage is the grid of camera feeds.
func CameraPage(cameras []Camera, filter string) g.Node {
	if filter == "" {
		filter = FilterAll
	}
	shown := FilterCameras(cameras, filter)
	return h.Div(h.Class("mx-auto max-w-6xl space-y-6 px-4 py-8"),
		h.Div(h.Class("flex items-center justify-between"),
			h.H1(h.Class("text-2xl font-bold"), g.Text("Camera Feeds")),
			h.Nav(h.Class("flex gap-2 text-sm"),
				filterTab(FilterAll, "All", filter),
				filterTab(FilterOnline, "Online", filter),
				filterTab(FilterFavorites, "Favorites", filter),
			),
		),
		g.If(len(shown) == 0, h.P(h.Class("text-sm text-slate-500"), g.Text("No cameras match this filter."))),
		h.Div(h.ID("cameras"), h.Class("grid gap-6 md:grid-cols-2"), g.Map(shown, cameraTile)),
	)
}

func filterTab(value, label, active string) g.Node {
	class := "rounded-full px-4 py-1.5 text-slate-600 hover:bg-slate-200"
	if value == active {
		class = "rounded-full bg-emerald-500 px-4 py-1.5 font-semibold text-white"
	}
	return h.A(h.Href("/camera?filter="+value), h.Class(class), g.Text(label))
}

func cameraTile(cam Camera) g.Node {
	return h.Article(h.ID("camera-"+cam.ID), h.Class(cardClass),
		h.Div(h.Class("relative flex h-40 items-center justify-center rounded-xl bg-slate-800 text-slate-300"),
			h.Span(h.Class("absolute left-3 top-3 rounded bg-black/60 px-2 py-0.5 text-xs"), g.Text(cam.StreamLabel)),
			g.If(cam.Online, g.Text(cam.Resolution+" · "+cam.Bitrate)),
			g.If(!cam.Online, h.Span(h.Class("text-rose-300"), g.Text("Offline"))),
		),
		h.Div(h.Class("mt-3 flex items-center justify-between"),
			h.Div(
				h.Div(h.Class("font-semibold"), g.Text(cam.Name), g.If(cam.Favorite, h.Span(h.Class("ml-1 text-amber-500"), g.Text("★")))),
				h.Div(h.Class("text-xs text-slate-500"), g.Text(cam.Zone)),
			),
			g.If(cam.Online, h.Span(h.Class("text-xs font-semibold text-emerald-700"), g.Text("Online"))),
			g.If(!cam.Online, h.Span(h.Class("text-xs text-slate-500"), g.Text(cam.LastSeen))),
		),
	)
}

// ReportPage is the weekly analytics summary.
func ReportPage(r Report) g.Node {
	total := 0
	for _, d := range r.Distribution {
		total += d.Count
	}
	return h.Div(h.Class("mx-auto max-w-6xl space-y-6 px-4 py-8"),
		h.H1(h.Class("text-2xl font-bold"), g.Text("Reports"), h.Span(h.Class("ml-2 text-sm font-normal text-slate-500"), g.Text("Last "+r.Period))),
		h.Section(h.ID("kpis"), h.Class("grid gap-4 md:grid-cols-4"),
			g.Map(r.KPIs, func(k KPI) g.Node {
				return h.Div(h.Class(cardClass),
					h.Div(h.Class("text-xs text-slate-500"), g.Text(k.Label)),
					h.Div(h.Class("mt-1 text-xl font-semibold"), g.Text(k.Value)),
					h.Div(h.Class(changeClass(k.Positive)), g.Text(k.Change)),
				)
			}),
		),
		h.Div(h.Class("grid gap-6 md:grid-cols-2"),
			h.Section(h.ID("distribution"), h.Class(cardClass),
				h.H2(h.Class("mb-3 font-semibold"), g.Text("Detection Types")),
				g.Map(r.Distribution, func(d Count) g.Node {
					return h.Div(h.Class("mb-2 flex justify-between text-sm"),
						h.Span(g.Text(d.Label)),
						h.Span(h.Class("text-slate-500"), g.Textf("%d (%d%%)", d.Count, percent(d.Count, total))),
					)
				}),
			),
			h.Section(h.ID("zones"), h.Class(cardClass),
				h.H2(h.Class("mb-3 font-semibold"), g.Text("Zone Activity")),
				g.Map(r.Zones, noteRow),
			),
		),
		h.Section(h.ID("insights"), h.Class(cardClass),
			h.H2(h.Class("mb-3 font-semibold"), g.Text("AI Insights")),
			g.Map(r.Insights, noteRow),
		),
	)
}

func changeClass(positive bool) string {
	if positive {
		return "text-xs text-emerald-600"
	}
	return "text-xs text-slate-400"
}

func noteRow(n Note) g.Node {
	return h.Div(h.Class("mb-3"),
		h.Div(h.Class("text-sm font-medium"), g.Text(n.Title)),
		h.Div(h.Class("text-xs text-slate-500"), g.Text(n.Body)),
	)
}

// percent rounds part/total to the nearest whole percent.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*100 + total/2) / total
}
