// Package metrics holds the Prometheus instruments for the auth views. The
// server registers them on the same registry that echoprometheus serves on
// /metrics.
package metrics

import (
	"github.com/khetguard/khetguard/internal/authview"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "khetguard"

// Auth counts identity submissions and tracks live auth views.
type Auth struct {
	Submissions *prometheus.CounterVec
	ActiveViews prometheus.GaugeFunc
}

// NewAuth creates the auth instruments and registers them with reg.
// activeViews is sampled on every scrape.
func NewAuth(reg prometheus.Registerer, activeViews func() float64) (*Auth, error) {
	a := &Auth{
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "submissions_total",
				Help:      "Auth view submissions by operation and outcome.",
			}, []string{"operation", "outcome"}),
		ActiveViews: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "active_views",
				Help:      "Number of auth views currently held in memory.",
			}, activeViews),
	}
	for _, c := range []prometheus.Collector{a.Submissions, a.ActiveViews} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Record implements authview.Recorder.
func (a *Auth) Record(op authview.Operation, outcome authview.Outcome) {
	a.Submissions.WithLabelValues(string(op), string(outcome)).Inc()
}

var _ authview.Recorder = (*Auth)(nil)
