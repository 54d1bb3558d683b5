package admin

import (
	"context"
	"sync"

	"github.com/rpupo63/studio-site-backend/errs"
)

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabOrders    Tab = "orders"
	TabMessages  Tab = "messages"
	TabContent   Tab = "content"
	TabProjects  Tab = "projects"
	TabReviews   Tab = "reviews"
	TabUsers     Tab = "users"
	TabAnalytics Tab = "analytics"
)

// Tabs lists the admin tabs in display order.
var Tabs = []Tab{TabDashboard, TabOrders, TabMessages, TabContent, TabProjects, TabReviews, TabUsers, TabAnalytics}

const DefaultTab = TabDashboard

// Panel is the management surface mounted for one tab.
type Panel interface {
	Load(ctx context.Context) (interface{}, error)
}

type PanelFunc func(ctx context.Context) (interface{}, error)

func (f PanelFunc) Load(ctx context.Context) (interface{}, error) { return f(ctx) }

// PanelFactory builds a panel the first time its tab is selected.
type PanelFactory func() Panel

// View is what a client renders for the shell.
type View struct {
	State     State  `json:"state"`
	Redirect  string `json:"redirect,omitempty"`
	Notice    string `json:"notice,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Tabs      []Tab  `json:"tabs,omitempty"`
	ActiveTab Tab    `json:"active_tab,omitempty"`
	Mounted   []Tab  `json:"mounted,omitempty"`
}

// Shell is one admin session's tab container. It starts loading, settles on
// authorized or denied, and drops back to denied on sign-out.
type Shell struct {
	factories map[Tab]PanelFactory

	mu        sync.Mutex
	decision  Decision
	activeTab Tab
	mounted   map[Tab]Panel
}

func NewShell(factories map[Tab]PanelFactory) *Shell {
	return &Shell{
		factories: factories,
		decision:  Decision{State: StateLoading},
		mounted:   make(map[Tab]Panel),
	}
}

// Settle applies the gate decision. An authorized shell mounts the default tab.
func (s *Shell) Settle(d Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decision = d
	if d.State != StateAuthorized {
		s.unmountLocked()
		return
	}
	if s.activeTab == "" {
		s.activeTab = DefaultTab
		s.mountLocked(DefaultTab)
	}
}

// SignedOut moves an authorized shell to denied with the login redirect.
func (s *Shell) SignedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.decision.State != StateAuthorized {
		return
	}
	s.decision = Decision{State: StateDenied, Redirect: LoginRedirect, Session: s.decision.Session}
	s.unmountLocked()
}

// Select activates tab, mounting its panel on first use.
func (s *Shell) Select(tab Tab) (Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.decision.State != StateAuthorized {
		return nil, errs.NewForbiddenError("admin shell is not authorized")
	}
	if _, ok := s.factories[tab]; !ok {
		return nil, errs.NewInvalidFieldError("tab", "unknown tab "+string(tab))
	}

	s.activeTab = tab
	return s.mountLocked(tab), nil
}

func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decision.State
}

func (s *Shell) Decision() Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decision
}

func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:    s.decision.State,
		Redirect: s.decision.Redirect,
		Notice:   s.decision.Notice,
	}
	if s.decision.State != StateAuthorized {
		return v
	}

	v.UserID = s.decision.Session.UserID
	v.Tabs = append([]Tab(nil), Tabs...)
	v.ActiveTab = s.activeTab
	for _, tab := range Tabs {
		if _, ok := s.mounted[tab]; ok {
			v.Mounted = append(v.Mounted, tab)
		}
	}
	return v
}

func (s *Shell) mountLocked(tab Tab) Panel {
	if panel, ok := s.mounted[tab]; ok {
		return panel
	}
	factory, ok := s.factories[tab]
	if !ok {
		return nil
	}
	panel := factory()
	s.mounted[tab] = panel
	return panel
}

func (s *Shell) unmountLocked() {
	s.activeTab = ""
	s.mounted = make(map[Tab]Panel)
}
