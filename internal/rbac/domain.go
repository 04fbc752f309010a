// Package rbac holds the role->module permission table that drives every
// access decision in the admin gateway: route guards, navigation visibility
// and write capability all derive from the one table.
package rbac

import "strings"

// Role is the canonical permission tier of an admin-panel user.
type Role string

// Canonical roles. Exactly one spelling is used internally; Normalize
// reconciles the variants the backend and older clients emit.
const (
	RoleSuperAdmin Role = "super-admin"
	RoleModerator  Role = "moderator"
	RoleViewer     Role = "viewer"
	RoleEmployee   Role = "employee"
)

// Module is a named functional area of the dashboard.
type Module string

// Dashboard modules.
const (
	ModuleDashboard     Module = "Dashboard"
	ModuleUsers         Module = "Users"
	ModuleProducts      Module = "Products"
	ModuleAuctions      Module = "Auctions"
	ModuleOrders        Module = "Orders"
	ModulePayments      Module = "Payments"
	ModuleDocuments     Module = "Documents"
	ModuleNotifications Module = "Notifications"
	ModuleAnalytics     Module = "Analytics"
	ModuleSettings      Module = "Settings"
)

// AllModules lists every module in display order.
func AllModules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleUsers,
		ModuleProducts,
		ModuleAuctions,
		ModuleOrders,
		ModulePayments,
		ModuleDocuments,
		ModuleNotifications,
		ModuleAnalytics,
		ModuleSettings,
	}
}

// Normalize canonicalizes a raw role spelling. The backend and older panel
// builds use "admin", "superadmin" and "super-admin" interchangeably; all
// three collapse to RoleSuperAdmin. Unknown input reports ok=false and never
// panics.
func Normalize(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "superadmin", "super-admin":
		return RoleSuperAdmin, true
	case "moderator":
		return RoleModerator, true
	case "viewer":
		return RoleViewer, true
	case "employee":
		return RoleEmployee, true
	default:
		return "", false
	}
}

// ParseModule resolves a module label case-insensitively. Unknown labels
// report ok=false so lookups stay fail-closed.
func ParseModule(raw string) (Module, bool) {
	for _, m := range AllModules() {
		if strings.EqualFold(string(m), strings.TrimSpace(raw)) {
			return m, true
		}
	}
	return "", false
}
