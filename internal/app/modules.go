// Package app lists the feature modules that make up KhetGuard.
package app

import (
	"github.com/khetguard/khetguard/internal/module"
	"github.com/khetguard/khetguard/internal/modules/audit"
	"github.com/khetguard/khetguard/internal/modules/dashboard"
)

// NewModules creates and returns the list of all active modules for the application.
// The audit module comes first so its log is registered before the dashboard boots.
func NewModules(deps Dependencies) []module.Module {
	mods := []module.Module{}
	if deps.Subscriber != nil {
		mods = append(mods, audit.New(auditDeps(deps)))
	}
	return append(mods, dashboard.New(dashboardDeps(deps)))
}
