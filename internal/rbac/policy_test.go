package rbac

import "testing"

func TestNormalizeCollapsesAdminSpellings(t *testing.T) {
	for _, raw := range []string{"admin", "Admin", "SUPERADMIN", " super-admin "} {
		role, ok := Normalize(raw)
		if !ok || role != RoleSuperAdmin {
			t.Errorf("Normalize(%q) = %q, %v", raw, role, ok)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{"admin", "moderator", "viewer", "employee"} {
		first, ok := Normalize(raw)
		if !ok {
			t.Fatalf("Normalize(%q) not ok", raw)
		}
		second, ok := Normalize(string(first))
		if !ok || second != first {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", raw, second, first)
		}
	}
}

func TestNormalizeUnknown(t *testing.T) {
	for _, raw := range []string{"", "root", "superuser", "admin2"} {
		if role, ok := Normalize(raw); ok {
			t.Errorf("Normalize(%q) = %q, want not ok", raw, role)
		}
	}
}

func TestPolicyFailsClosed(t *testing.T) {
	p := DefaultPolicy()
	if p.HasModuleAccess(Role("ghost"), ModuleDashboard) {
		t.Error("unknown role must have no access")
	}
	if p.HasModuleAccess(RoleSuperAdmin, Module("Warp")) {
		t.Error("unknown module must not be accessible")
	}
	if p.HasPageAccess(RoleSuperAdmin, "nonexistent") {
		t.Error("unknown page must fail closed")
	}
	if modules := p.ModulesFor(Role("ghost")); len(modules) != 0 {
		t.Errorf("unknown role modules = %v", modules)
	}
}

func TestSuperAdminSeesEverything(t *testing.T) {
	p := DefaultPolicy()
	for _, m := range AllModules() {
		if !p.HasModuleAccess(RoleSuperAdmin, m) {
			t.Errorf("super-admin missing %s", m)
		}
	}
	if !p.CanWrite(RoleSuperAdmin) {
		t.Error("super-admin must write")
	}
}

func TestCapabilityPartition(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		role      Role
		write     bool
		readOnly  bool
		ownScoped bool
	}{
		{RoleSuperAdmin, true, false, false},
		{RoleModerator, true, false, false},
		{RoleViewer, false, true, false},
		{RoleEmployee, false, false, true},
	}
	for _, tc := range cases {
		if got := p.CanWrite(tc.role); got != tc.write {
			t.Errorf("%s CanWrite = %v", tc.role, got)
		}
		if got := p.IsReadOnly(tc.role); got != tc.readOnly {
			t.Errorf("%s IsReadOnly = %v", tc.role, got)
		}
		if got := p.OwnScoped(tc.role); got != tc.ownScoped {
			t.Errorf("%s OwnScoped = %v", tc.role, got)
		}
	}
}

func TestModeratorModuleSet(t *testing.T) {
	p := DefaultPolicy()
	want := []Module{
		ModuleDashboard, ModuleUsers, ModuleProducts, ModuleAuctions,
		ModuleNotifications,
	}
	got := p.ModulesFor(RoleModerator)
	if len(got) != len(want) {
		t.Fatalf("moderator modules = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("moderator modules[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	for _, m := range []Module{ModuleOrders, ModulePayments, ModuleDocuments, ModuleAnalytics, ModuleSettings} {
		if p.HasModuleAccess(RoleModerator, m) {
			t.Errorf("moderator must not see %s", m)
		}
	}
}

func TestViewerHasNoMutatingSurface(t *testing.T) {
	p := DefaultPolicy()
	if p.CanWrite(RoleViewer) || p.OwnScoped(RoleViewer) {
		t.Fatal("viewer must have neither write nor own-scoped capability")
	}
	if p.HasModuleAccess(RoleViewer, ModuleSettings) {
		t.Error("viewer must not see settings")
	}
	if p.HasModuleAccess(RoleViewer, ModuleUsers) {
		t.Error("viewer must not see users")
	}
}

func TestEmployeeRowIsConfigurable(t *testing.T) {
	p := NewPolicy([]Module{ModuleDashboard, ModuleOrders})
	if !p.HasModuleAccess(RoleEmployee, ModuleOrders) {
		t.Error("configured module missing")
	}
	if p.HasModuleAccess(RoleEmployee, ModuleProducts) {
		t.Error("unconfigured module present")
	}

	fallback := NewPolicy(nil)
	for _, m := range []Module{ModuleDashboard, ModuleProducts, ModuleAuctions} {
		if !fallback.HasModuleAccess(RoleEmployee, m) {
			t.Errorf("default employee row missing %s", m)
		}
	}
}

func TestNavigationAgreesWithTable(t *testing.T) {
	p := DefaultPolicy()
	for _, role := range []Role{RoleSuperAdmin, RoleModerator, RoleViewer, RoleEmployee} {
		items := p.VisibleNavItems(role)
		modules := p.ModulesFor(role)
		if len(items) != len(modules) {
			t.Fatalf("%s: %d nav items for %d modules", role, len(items), len(modules))
		}
		for i, item := range items {
			if item.Module != modules[i] {
				t.Errorf("%s: nav order diverges at %d: %s vs %s", role, i, item.Module, modules[i])
			}
			if !p.HasModuleAccess(role, item.Module) {
				t.Errorf("%s: nav shows inaccessible module %s", role, item.Module)
			}
			if !p.CanEnterPage(role, item.PageID) {
				t.Errorf("%s: nav links to blocked page %s", role, item.PageID)
			}
		}
	}
}

func TestAccessiblePagesMatchModules(t *testing.T) {
	p := DefaultPolicy()
	pages := p.AccessiblePages(RoleViewer)
	want := []string{"dashboard", "products", "auctions"}
	if len(pages) != len(want) {
		t.Fatalf("pages = %v", pages)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("pages[%d] = %q, want %q", i, pages[i], want[i])
		}
	}
}

func TestParseModule(t *testing.T) {
	if m, ok := ParseModule("products"); !ok || m != ModuleProducts {
		t.Errorf("ParseModule(products) = %q, %v", m, ok)
	}
	if m, ok := ParseModule(" NOTIFICATIONS "); !ok || m != ModuleNotifications {
		t.Errorf("ParseModule(NOTIFICATIONS) = %q, %v", m, ok)
	}
	if _, ok := ParseModule("warp"); ok {
		t.Error("unknown module must not parse")
	}
}
