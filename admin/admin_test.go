package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/identity"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
)

type fakeAuth map[string]identity.Session

func (f fakeAuth) Authenticate(_ context.Context, token string) (identity.Session, error) {
	if token == "" {
		return identity.Session{}, errs.NewMissingTokenError()
	}
	session, ok := f[token]
	if !ok {
		return identity.Session{}, errs.NewInvalidTokenError(nil)
	}
	return session, nil
}

type fakeRoles struct {
	roles map[string]string
	err   error
}

func (f fakeRoles) HasRole(_ context.Context, userID, role string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.roles[userID] == role, nil
}

func testGate(rolesErr error) Gate {
	auth := fakeAuth{
		"admin-token":  {UserID: "u-admin", SessionID: "s-admin"},
		"editor-token": {UserID: "u-editor", SessionID: "s-editor"},
		"nobody-token": {UserID: "u-nobody", SessionID: "s-nobody"},
	}
	roles := fakeRoles{roles: map[string]string{"u-admin": models.RoleAdmin, "u-editor": models.RoleEditor}, err: rolesErr}
	return NewGate(auth, roles)
}

// countingFactories records how many times each panel is mounted.
func countingFactories(mounts map[Tab]int) map[Tab]PanelFactory {
	factories := make(map[Tab]PanelFactory, len(Tabs))
	for _, tab := range Tabs {
		tab := tab
		factories[tab] = func() Panel {
			mounts[tab]++
			return PanelFunc(func(context.Context) (interface{}, error) { return string(tab), nil })
		}
	}
	return factories
}

func TestGate_Resolve(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		rolesErr     error
		wantState    State
		wantRedirect string
		wantNotice   bool
	}{
		{"admin", "admin-token", nil, StateAuthorized, "", false},
		{"no session", "", nil, StateDenied, LoginRedirect, false},
		{"invalid session", "forged", nil, StateDenied, LoginRedirect, false},
		{"editor", "editor-token", nil, StateDenied, HomeRedirect, true},
		{"no role row", "nobody-token", nil, StateDenied, HomeRedirect, true},
		{"role lookup failure", "admin-token", errors.New("db down"), StateDenied, HomeRedirect, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testGate(tt.rolesErr).Resolve(context.Background(), tt.token)
			if d.State != tt.wantState || d.Redirect != tt.wantRedirect {
				t.Errorf("Resolve() = %s -> %q, want %s -> %q", d.State, d.Redirect, tt.wantState, tt.wantRedirect)
			}
			if (d.Notice != "") != tt.wantNotice {
				t.Errorf("Resolve() notice = %q, wantNotice %v", d.Notice, tt.wantNotice)
			}
		})
	}
}

func TestShell_AdminMountsDashboardByDefault(t *testing.T) {
	mounts := map[Tab]int{}
	shell := NewShell(countingFactories(mounts))
	if shell.State() != StateLoading {
		t.Fatalf("initial State() = %s, want loading", shell.State())
	}

	shell.Settle(testGate(nil).Resolve(context.Background(), "admin-token"))

	view := shell.View()
	if view.State != StateAuthorized || view.ActiveTab != TabDashboard {
		t.Fatalf("View() = %+v, want authorized on dashboard", view)
	}
	if len(view.Mounted) != 1 || view.Mounted[0] != TabDashboard {
		t.Errorf("Mounted = %v, want only dashboard", view.Mounted)
	}
	if len(view.Tabs) != 8 {
		t.Errorf("Tabs = %v, want 8 tabs", view.Tabs)
	}

	t.Run("panels mount lazily and once", func(t *testing.T) {
		if mounts[TabOrders] != 0 {
			t.Fatal("orders panel mounted before selection")
		}
		for i := 0; i < 3; i++ {
			panel, err := shell.Select(TabOrders)
			if err != nil {
				t.Fatalf("Select(orders) error = %v", err)
			}
			if got, _ := panel.Load(context.Background()); got != "orders" {
				t.Errorf("Load() = %v, want orders", got)
			}
		}
		if mounts[TabOrders] != 1 {
			t.Errorf("orders mounted %d times, want 1", mounts[TabOrders])
		}
		if shell.View().ActiveTab != TabOrders {
			t.Errorf("ActiveTab = %s, want orders", shell.View().ActiveTab)
		}
	})

	t.Run("unknown tab", func(t *testing.T) {
		if _, err := shell.Select("billing"); !errs.IsInvalidFieldError(err) {
			t.Errorf("Select(billing) error = %v, want invalid field", err)
		}
	})
}

func TestShell_EditorNeverRendersTabs(t *testing.T) {
	mounts := map[Tab]int{}
	shell := NewShell(countingFactories(mounts))
	shell.Settle(testGate(nil).Resolve(context.Background(), "editor-token"))

	view := shell.View()
	if view.State != StateDenied || view.Redirect != HomeRedirect || view.Notice != RejectionNotice {
		t.Errorf("View() = %+v", view)
	}
	if view.ActiveTab != "" || len(view.Tabs) != 0 || len(view.Mounted) != 0 {
		t.Errorf("denied view exposes tabs: %+v", view)
	}
	if _, err := shell.Select(TabDashboard); !errs.IsForbidden(err) {
		t.Errorf("Select() error = %v, want forbidden", err)
	}
	if len(mounts) != 0 {
		t.Errorf("panels mounted for denied shell: %v", mounts)
	}
}

func TestRegistry_SignOutDeniesShell(t *testing.T) {
	hub := realtime.NewHub()
	registry := NewRegistry(testGate(nil), countingFactories(map[Tab]int{}))
	if err := registry.Listen(hub); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer registry.Close()
	ctx := context.Background()

	shell := registry.Open(ctx, "admin-token")
	if again := registry.Open(ctx, "admin-token"); again != shell {
		t.Error("Open() should reuse the session's shell")
	}
	if _, err := shell.Select(TabReviews); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	hub.Publish(realtime.Event{Topic: realtime.TopicAuth, Type: realtime.EventSignedOut, SessionID: "s-other"})
	hub.Wait()
	if shell.State() != StateAuthorized {
		t.Fatal("sign-out of another session affected this shell")
	}

	hub.Publish(realtime.Event{Topic: realtime.TopicAuth, Type: realtime.EventSignedOut, UserID: "u-admin", SessionID: "s-admin"})
	hub.Wait()
	view := shell.View()
	if view.State != StateDenied || view.Redirect != LoginRedirect || view.Notice != "" {
		t.Errorf("View() after sign-out = %+v, want denied to login without notice", view)
	}
	if len(view.Mounted) != 0 {
		t.Errorf("Mounted = %v after sign-out", view.Mounted)
	}
}

func TestRegistry_EvictsExpiredSessions(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	auth := fakeAuth{
		"short-token": {UserID: "u-admin", SessionID: "s-short", ExpiresAt: start.Add(time.Minute)},
		"long-token":  {UserID: "u-admin", SessionID: "s-long", ExpiresAt: start.Add(time.Hour)},
		"open-token":  {UserID: "u-admin", SessionID: "s-open"},
	}
	gate := NewGate(auth, fakeRoles{roles: map[string]string{"u-admin": models.RoleAdmin}})
	registry := NewRegistry(gate, countingFactories(map[Tab]int{}))
	now := start
	registry.now = func() time.Time { return now }
	ctx := context.Background()

	for _, token := range []string{"short-token", "long-token", "open-token"} {
		registry.Open(ctx, token)
	}
	if len(registry.shells) != 3 {
		t.Fatalf("retained %d shells, want 3", len(registry.shells))
	}

	now = start.Add(30 * time.Minute)
	registry.Open(ctx, "long-token")
	if _, ok := registry.shells["s-short"]; ok {
		t.Error("expired session shell was not evicted")
	}
	if len(registry.shells) != 2 {
		t.Errorf("retained %d shells, want 2", len(registry.shells))
	}

	now = start.Add(2 * time.Hour)
	registry.Open(ctx, "open-token")
	if _, ok := registry.shells["s-open"]; !ok || len(registry.shells) != 1 {
		t.Errorf("shells = %v, want only the session without expiry", registry.shells)
	}
}

type stubOrders struct{}

func (stubOrders) FindAll(context.Context) ([]models.Order, error) {
	return []models.Order{{ClientName: "a"}}, nil
}
func (stubOrders) CountByStatus(context.Context) (map[models.OrderStatus]int64, error) {
	return map[models.OrderStatus]int64{models.OrderStatusNew: 2, models.OrderStatusCompleted: 3}, nil
}

type stubMessages struct{}

func (stubMessages) FindAll(context.Context) ([]models.ContactMessage, error) { return nil, nil }
func (stubMessages) CountUnread(context.Context) (int64, error)               { return 4, nil }

type stubReviews struct{ err error }

func (stubReviews) FindAll(context.Context) ([]models.Review, error) { return nil, nil }
func (s stubReviews) CountPending(context.Context) (int64, error)   { return 1, s.err }

type stubSections struct{}

func (stubSections) Sections() []models.ContentSection {
	return []models.ContentSection{{SectionType: models.SectionHero}}
}
func (stubSections) Err() string { return "" }

type stubProjects struct{}

func (stubProjects) Refresh(context.Context) error { return nil }
func (stubProjects) Projects() []models.ProjectWithStats {
	return []models.ProjectWithStats{{}, {}}
}

type stubUsers struct{}

func (stubUsers) FindAll(context.Context) ([]models.UserRole, error) { return nil, nil }

func TestPanelFactories(t *testing.T) {
	src := Sources{
		Orders:   stubOrders{},
		Messages: stubMessages{},
		Reviews:  stubReviews{},
		Sections: stubSections{},
		Projects: stubProjects{},
		Users:    stubUsers{},
	}
	factories := PanelFactories(src)
	for _, tab := range Tabs {
		if factories[tab] == nil {
			t.Errorf("no panel for tab %s", tab)
		}
	}

	got, err := factories[TabDashboard]().Load(context.Background())
	if err != nil {
		t.Fatalf("dashboard Load() error = %v", err)
	}
	d := got.(Dashboard)
	if d.TotalOrders != 5 || d.UnreadMessages != 4 || d.PendingReviews != 1 || d.Projects != 2 || d.Sections != 1 {
		t.Errorf("Dashboard = %+v", d)
	}

	analytics, _ := factories[TabAnalytics]().Load(context.Background())
	if a := analytics.(AnalyticsPanel); a.Available || a.Data.Sessions == nil {
		t.Errorf("AnalyticsPanel = %+v, want unavailable with empty data", a)
	}

	src.Reviews = stubReviews{err: errors.New("timeout")}
	if _, err := PanelFactories(src)[TabDashboard]().Load(context.Background()); err == nil {
		t.Error("dashboard Load() should fail when a count fails")
	}
}
