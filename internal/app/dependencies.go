package app

import (
	"time"

	"github.com/khetguard/khetguard/internal/modules/audit"
	"github.com/khetguard/khetguard/internal/modules/dashboard"
	"github.com/khetguard/khetguard/internal/pubsub"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	// AuditLimit is how many auth events the audit log keeps; zero means the default.
	AuditLimit int
	Now        func() time.Time
}

// auditDeps creates the dependency struct for the audit module.
func auditDeps(deps Dependencies) audit.Dependencies {
	return audit.Dependencies{
		Subscriber: deps.Subscriber,
		Limit:      deps.AuditLimit,
	}
}

// dashboardDeps creates the dependency struct for the dashboard module.
func dashboardDeps(deps Dependencies) dashboard.Dependencies {
	return dashboard.Dependencies{
		Now: deps.Now,
	}
}
