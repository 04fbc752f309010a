package rbac

type moduleSet map[Module]struct{}

func newModuleSet(modules ...Module) moduleSet {
	set := make(moduleSet, len(modules))
	for _, m := range modules {
		set[m] = struct{}{}
	}
	return set
}

// row describes one role's entry in the policy table. Write capability lives
// on the row so CanWrite can never drift from the module table it belongs to.
type row struct {
	modules   moduleSet
	write     bool
	ownScoped bool
}

// Policy is the single authoritative role->module permission table.
type Policy struct {
	rows  map[Role]row
	pages map[Module]string
}

// NewPolicy builds the default table. The employee row is the one
// configurable entry: product requirements decide its module set, so callers
// pass it in rather than the table guessing.
func NewPolicy(employeeModules []Module) *Policy {
	if len(employeeModules) == 0 {
		employeeModules = []Module{ModuleDashboard, ModuleProducts, ModuleAuctions}
	}
	p := &Policy{
		rows: map[Role]row{
			RoleSuperAdmin: {modules: newModuleSet(AllModules()...), write: true},
			RoleModerator: {modules: newModuleSet(
				ModuleDashboard, ModuleUsers, ModuleProducts, ModuleAuctions,
				ModuleNotifications,
			), write: true},
			RoleViewer: {modules: newModuleSet(
				ModuleDashboard, ModuleProducts, ModuleAuctions,
			)},
			RoleEmployee: {modules: newModuleSet(employeeModules...), ownScoped: true},
		},
		pages: make(map[Module]string, len(AllModules())),
	}
	for _, m := range AllModules() {
		p.pages[m] = pageID(m)
	}
	return p
}

// DefaultPolicy returns the table with the default employee row.
func DefaultPolicy() *Policy {
	return NewPolicy(nil)
}

// ModulesFor returns the modules the role may see, in display order.
// Unknown roles get the empty set, never an error and never full access.
func (p *Policy) ModulesFor(role Role) []Module {
	entry, ok := p.rows[role]
	if !ok {
		return nil
	}
	modules := make([]Module, 0, len(entry.modules))
	for _, m := range AllModules() {
		if _, ok := entry.modules[m]; ok {
			modules = append(modules, m)
		}
	}
	return modules
}

// HasModuleAccess reports whether the role may see the module. Fails closed:
// unrecognized role or module yields false.
func (p *Policy) HasModuleAccess(role Role, module Module) bool {
	entry, ok := p.rows[role]
	if !ok {
		return false
	}
	_, ok = entry.modules[module]
	return ok
}

// CanWrite reports whether the role may perform mutating actions on shared
// resources. Derived from the table row, not configured separately.
func (p *Policy) CanWrite(role Role) bool {
	return p.rows[role].write
}

// IsReadOnly reports whether the role is a pure read-only tier.
func (p *Policy) IsReadOnly(role Role) bool {
	entry, ok := p.rows[role]
	if !ok {
		return false
	}
	return !entry.write && !entry.ownScoped
}

// OwnScoped reports whether the role only operates on its own company's
// listings (the employee tier).
func (p *Policy) OwnScoped(role Role) bool {
	return p.rows[role].ownScoped
}

// HasPageAccess checks access by routed page id. Unknown page ids fail closed.
func (p *Policy) HasPageAccess(role Role, page string) bool {
	for module, id := range p.pages {
		if id == page {
			return p.HasModuleAccess(role, module)
		}
	}
	return false
}

// AccessiblePages returns the routed page ids the role may enter, in display
// order.
func (p *Policy) AccessiblePages(role Role) []string {
	modules := p.ModulesFor(role)
	pages := make([]string, 0, len(modules))
	for _, m := range modules {
		pages = append(pages, p.pages[m])
	}
	return pages
}

// DefaultPage is where a role lands when it requests a page outside its
// allow-list. Matches the panel behaviour of silently falling back to the
// dashboard instead of showing an error.
const DefaultPage = "dashboard"

// pageID is the fixed Module -> routed page projection.
func pageID(m Module) string {
	switch m {
	case ModuleDashboard:
		return "dashboard"
	case ModuleUsers:
		return "users"
	case ModuleProducts:
		return "products"
	case ModuleAuctions:
		return "auctions"
	case ModuleOrders:
		return "orders"
	case ModulePayments:
		return "payments"
	case ModuleDocuments:
		return "documents"
	case ModuleNotifications:
		return "notifications"
	case ModuleAnalytics:
		return "analytics"
	case ModuleSettings:
		return "settings"
	default:
		return ""
	}
}
