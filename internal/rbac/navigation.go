package rbac

// NavItem is one sidebar entry of the admin panel.
type NavItem struct {
	PageID string `json:"pageId"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Module Module `json:"module"`
}

// navItems is the full sidebar in display order. Visibility is decided by
// the policy table at request time; items carry no role list of their own so
// navigation can never disagree with the table.
var navItems = []NavItem{
	{PageID: "dashboard", Label: "Dashboard", Icon: "home", Module: ModuleDashboard},
	{PageID: "users", Label: "Users", Icon: "users", Module: ModuleUsers},
	{PageID: "products", Label: "Products", Icon: "package", Module: ModuleProducts},
	{PageID: "auctions", Label: "Auctions", Icon: "gavel", Module: ModuleAuctions},
	{PageID: "orders", Label: "Orders", Icon: "shopping-cart", Module: ModuleOrders},
	{PageID: "payments", Label: "Payments", Icon: "credit-card", Module: ModulePayments},
	{PageID: "documents", Label: "Documents", Icon: "file-text", Module: ModuleDocuments},
	{PageID: "notifications", Label: "Notifications", Icon: "bell", Module: ModuleNotifications},
	{PageID: "analytics", Label: "Analytics", Icon: "bar-chart", Module: ModuleAnalytics},
	{PageID: "settings", Label: "Settings", Icon: "settings", Module: ModuleSettings},
}

// VisibleNavItems filters the sidebar for the role, preserving order.
func (p *Policy) VisibleNavItems(role Role) []NavItem {
	visible := make([]NavItem, 0, len(navItems))
	for _, item := range navItems {
		if p.HasModuleAccess(role, item.Module) {
			visible = append(visible, item)
		}
	}
	return visible
}

// CanEnterPage reports whether the role may enter the routed page. Callers
// redirect to DefaultPage on false rather than rendering an error.
func (p *Policy) CanEnterPage(role Role, page string) bool {
	return p.HasPageAccess(role, page)
}
