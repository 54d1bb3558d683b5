package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/admin"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/identity"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rpupo63/studio-site-backend/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeSections struct {
	rows []models.ContentSection
}

func (f fakeSections) Section(sectionType string) (models.ContentSection, bool) {
	for _, row := range f.rows {
		if row.SectionType == sectionType {
			return row, true
		}
	}
	return models.ContentSection{}, false
}

func (f fakeSections) Metadata(sectionType string) (map[string]interface{}, bool) {
	row, ok := f.Section(sectionType)
	if !ok {
		return nil, false
	}
	return row.Metadata, true
}

func (f fakeSections) Sections() []models.ContentSection { return f.rows }

func (f fakeSections) ActiveSections() []models.ContentSection {
	var active []models.ContentSection
	for _, row := range f.rows {
		if row.Active() {
			active = append(active, row)
		}
	}
	return active
}

func (f fakeSections) Err() string   { return "" }
func (f fakeSections) Loading() bool { return false }

type fakeSectionRepo struct {
	added []models.ContentSection
}

func (f *fakeSectionRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ContentSection, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSectionRepo) Add(_ context.Context, section *models.ContentSection) error {
	section.ID = uuid.New()
	f.added = append(f.added, *section)
	return nil
}

func (f *fakeSectionRepo) Update(context.Context, *models.ContentSection) error { return nil }
func (f *fakeSectionRepo) Delete(context.Context, uuid.UUID) error            { return nil }

type fakeCatalog struct {
	projects  []models.ProjectWithStats
	reviews   []models.Review
	err       error
	refreshes int
}

func (f *fakeCatalog) Refresh(context.Context) error {
	f.refreshes++
	return f.err
}

func (f *fakeCatalog) EnsureLoaded(context.Context) error   { return f.err }
func (f *fakeCatalog) Projects() []models.ProjectWithStats  { return f.projects }
func (f *fakeCatalog) Reviews() []models.Review             { return f.reviews }
func (f *fakeCatalog) Err() string {
	if f.err != nil {
		return f.err.Error()
	}
	return ""
}

type fakeProjectRepo struct{}

func (fakeProjectRepo) FindByID(context.Context, uuid.UUID) (*models.Project, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeProjectRepo) Add(_ context.Context, p *models.Project) error { p.ID = uuid.New(); return nil }
func (fakeProjectRepo) Update(context.Context, *models.Project) error  { return nil }
func (fakeProjectRepo) Delete(context.Context, uuid.UUID) error        { return gorm.ErrRecordNotFound }

type fakeReviewRepo struct {
	added []models.Review
}

func (f *fakeReviewRepo) Add(_ context.Context, review *models.Review) error {
	review.ID = uuid.New()
	f.added = append(f.added, *review)
	return nil
}
func (f *fakeReviewRepo) SetFlags(context.Context, uuid.UUID, *bool, *bool) error { return nil }
func (f *fakeReviewRepo) Delete(context.Context, uuid.UUID) error                { return nil }

type fakeOrderRepo struct {
	mu    sync.Mutex
	added []models.Order
}

func (f *fakeOrderRepo) Add(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = uuid.New()
	f.added = append(f.added, *order)
	return nil
}
func (f *fakeOrderRepo) UpdateStatus(context.Context, uuid.UUID, models.OrderStatus) error { return nil }

type fakeMessageRepo struct{}

func (fakeMessageRepo) Add(_ context.Context, m *models.ContactMessage) error { m.ID = uuid.New(); return nil }
func (fakeMessageRepo) MarkRead(context.Context, uuid.UUID, bool) error       { return nil }
func (fakeMessageRepo) Delete(context.Context, uuid.UUID) error               { return nil }

type fakeRoleRepo struct {
	granted []string
}

func (f *fakeRoleRepo) Grant(_ context.Context, userID, role string) error {
	key := userID + ":" + role
	for _, g := range f.granted {
		if g == key {
			return errs.NewAlreadyExists("user role")
		}
	}
	f.granted = append(f.granted, key)
	return nil
}
func (f *fakeRoleRepo) Revoke(context.Context, string, string) error { return nil }

type fakeNotifier struct {
	sent chan services.Notification
}

func (f fakeNotifier) Dispatch(_ context.Context, msg services.Notification) error {
	f.sent <- msg
	return nil
}

type fakeUploader struct {
	contentType string
	body        string
}

func (f *fakeUploader) Upload(_ context.Context, folder, contentType string, body io.Reader, _ int64) (string, error) {
	data, _ := io.ReadAll(body)
	f.contentType, f.body = contentType, string(data)
	return "https://cdn.test/" + folder + "/x.png", nil
}

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

type fakeRoleChecker map[string]string

func (f fakeRoleChecker) HasRole(_ context.Context, userID, role string) (bool, error) {
	return f[userID] == role, nil
}

type fakeSigner struct {
	signedOut []string
}

func (f *fakeSigner) SignOut(_ context.Context, session identity.Session) error {
	f.signedOut = append(f.signedOut, session.SessionID)
	return nil
}

type testEnv struct {
	router   http.Handler
	sections *fakeSectionRepo
	reviews  *fakeReviewRepo
	orders   *fakeOrderRepo
	roles    *fakeRoleRepo
	notified chan services.Notification
	uploader *fakeUploader
	signer   *fakeSigner
}

func newTestEnv(t *testing.T, catalog *fakeCatalog) testEnv {
	t.Helper()

	active := true
	rows := []models.ContentSection{
		{ID: uuid.New(), SectionType: models.SectionSettings, IsActive: &active, Metadata: datatypes.JSONMap{"brandName": "Studio X"}},
		{ID: uuid.New(), SectionType: models.SectionHero, IsActive: &active, Metadata: datatypes.JSONMap{}},
	}

	gate := admin.NewGate(
		fakeAuth{
			"admin-token":  {UserID: "u-admin", SessionID: "s-admin"},
			"viewer-token": {UserID: "u-viewer", SessionID: "s-viewer"},
		},
		fakeRoleChecker{"u-admin": models.RoleAdmin},
	)
	factories := make(map[admin.Tab]admin.PanelFactory, len(admin.Tabs))
	for _, tab := range admin.Tabs {
		tab := tab
		factories[tab] = func() admin.Panel {
			return admin.PanelFunc(func(context.Context) (interface{}, error) { return map[string]string{"tab": string(tab)}, nil })
		}
	}

	if catalog == nil {
		catalog = &fakeCatalog{}
	}
	env := testEnv{
		sections: &fakeSectionRepo{},
		reviews:  &fakeReviewRepo{},
		orders:   &fakeOrderRepo{},
		roles:    &fakeRoleRepo{},
		notified: make(chan services.Notification, 1),
		uploader: &fakeUploader{},
		signer:   &fakeSigner{},
	}
	env.router = newRouter(Dependencies{
		Sections:       fakeSections{rows: rows},
		SectionRepo:    env.sections,
		Catalog:        catalog,
		ProjectRepo:    fakeProjectRepo{},
		ReviewRepo:     env.reviews,
		OrderRepo:      env.orders,
		MessageRepo:    fakeMessageRepo{},
		RoleRepo:       env.roles,
		Notifier:       fakeNotifier{sent: env.notified},
		Media:          env.uploader,
		Gate:           gate,
		Shells:         admin.NewRegistry(gate, factories),
		Identity:       env.signer,
		Publisher:      realtime.NopPublisher{},
		AllowedOrigins: []string{"https://studio.test"},
	}, withStartupTime(time.Now()))
	return env
}

func (env testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestViewRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("navbar uses settings brand", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/views/navbar", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var nav struct {
			BrandName string `json:"brand_name"`
		}
		decodeBody(t, rec, &nav)
		if nav.BrandName != "Studio X" {
			t.Errorf("brand_name = %q, want Studio X", nav.BrandName)
		}
	})

	t.Run("page bundles every view", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/views", "", "")
		var page map[string]json.RawMessage
		decodeBody(t, rec, &page)
		for _, key := range []string{"navbar", "hero", "about", "services", "reviews", "contact", "footer"} {
			if _, ok := page[key]; !ok {
				t.Errorf("page missing %q", key)
			}
		}
	})

	t.Run("unknown view", func(t *testing.T) {
		if rec := env.do(http.MethodGet, "/views/sidebar", "", ""); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSectionRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("missing section type", func(t *testing.T) {
		if rec := env.do(http.MethodGet, "/sections/pricing", "", ""); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("metadata of present section", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/sections/settings/metadata", "", "")
		var meta map[string]interface{}
		decodeBody(t, rec, &meta)
		if meta["brandName"] != "Studio X" {
			t.Errorf("metadata = %v", meta)
		}
	})

	t.Run("create requires admin", func(t *testing.T) {
		body := `{"section_type":"about","title":"Hi"}`
		if rec := env.do(http.MethodPost, "/admin/sections", "", body); rec.Code != http.StatusUnauthorized {
			t.Errorf("anonymous status = %d, want 401", rec.Code)
		}
		if rec := env.do(http.MethodPost, "/admin/sections", "viewer-token", body); rec.Code != http.StatusForbidden {
			t.Errorf("viewer status = %d, want 403", rec.Code)
		}
		if len(env.sections.added) != 0 {
			t.Fatalf("section stored for non-admin: %v", env.sections.added)
		}
	})

	t.Run("admin create defaults active", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/admin/sections", "admin-token", `{"section_type":"about","title":"<b>Hi</b>"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if len(env.sections.added) != 1 || !env.sections.added[0].Active() {
			t.Errorf("added = %+v, want one active section", env.sections.added)
		}
	})

	t.Run("update missing section", func(t *testing.T) {
		rec := env.do(http.MethodPut, "/admin/sections/"+uuid.NewString(), "admin-token", `{"section_type":"about"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestProjectRoutes(t *testing.T) {
	t.Run("lists catalog", func(t *testing.T) {
		catalog := &fakeCatalog{projects: []models.ProjectWithStats{
			{Project: models.Project{Title: "Atlas"}, ProjectStats: models.ProjectStats{ReviewCount: 2, AverageRating: 4.5}},
		}}
		env := newTestEnv(t, catalog)

		rec := env.do(http.MethodGet, "/projects", "", "")
		var got ProjectCollection
		decodeBody(t, rec, &got)
		if got.Total != 1 || got.Projects[0].AverageRating != 4.5 {
			t.Errorf("collection = %+v", got)
		}
	})

	t.Run("backend unavailable", func(t *testing.T) {
		env := newTestEnv(t, &fakeCatalog{err: errs.NewBackendUnavailableError("load projects", nil)})
		rec := env.do(http.MethodGet, "/projects", "", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Error("503 response should advertise Retry-After")
		}
	})

	t.Run("refresh failure keeps list", func(t *testing.T) {
		catalog := &fakeCatalog{
			projects: []models.ProjectWithStats{{Project: models.Project{Title: "Atlas"}}},
			err:      errs.NewBackendUnavailableError("load projects", nil),
		}
		env := newTestEnv(t, catalog)

		if rec := env.do(http.MethodPost, "/projects/refresh", "", ""); rec.Code == http.StatusOK {
			t.Error("public refresh route should not exist")
		}
		if rec := env.do(http.MethodPost, "/admin/projects/refresh", "", ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("anonymous refresh status = %d, want 401", rec.Code)
		}
		if calls := catalog.refreshes; calls != 0 {
			t.Errorf("catalog refreshed %d times by unauthorized callers", calls)
		}

		rec := env.do(http.MethodPost, "/admin/projects/refresh", "admin-token", "")
		var got ProjectCollection
		decodeBody(t, rec, &got)
		if rec.Code != http.StatusOK || got.Total != 1 || got.Error == "" {
			t.Errorf("status %d collection %+v", rec.Code, got)
		}
	})

	t.Run("delete missing project", func(t *testing.T) {
		env := newTestEnv(t, nil)
		if rec := env.do(http.MethodDelete, "/admin/projects/"+uuid.NewString(), "admin-token", ""); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSubmitReview(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"reviewer_name":"Ana","rating":5,"review_text":"Great <script>x</script>work"}`, http.StatusCreated},
		{"rating too high", `{"reviewer_name":"Ana","rating":6,"review_text":"ok"}`, http.StatusBadRequest},
		{"missing text", `{"reviewer_name":"Ana","rating":4}`, http.StatusBadRequest},
		{"unknown field", `{"reviewer_name":"Ana","rating":4,"review_text":"ok","is_approved":true}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := env.do(http.MethodPost, "/reviews", "", tt.body); rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	if len(env.reviews.added) != 1 {
		t.Fatalf("added %d reviews, want 1", len(env.reviews.added))
	}
	stored := env.reviews.added[0]
	if stored.IsApproved {
		t.Error("submitted review stored approved")
	}
	if strings.Contains(stored.ReviewText, "<script>") {
		t.Errorf("review text not sanitized: %q", stored.ReviewText)
	}
}

func TestSubmitOrder(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{"client_name":"Ana","client_email":"ana@example.com","service_type":"Branding","deadline":"2026-12-01","description":"New logo"}`
	rec := env.do(http.MethodPost, "/orders", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var order models.Order
	decodeBody(t, rec, &order)
	if order.Status != models.OrderStatusNew {
		t.Errorf("status = %q, want new", order.Status)
	}
	if order.Deadline == nil || order.Deadline.Format(dateLayout) != "2026-12-01" {
		t.Errorf("deadline = %v", order.Deadline)
	}

	select {
	case msg := <-env.notified:
		if !strings.Contains(msg.Text, "Branding") {
			t.Errorf("notification text = %q", msg.Text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification dispatched")
	}

	t.Run("bad email", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/orders", "", `{"client_name":"A","client_email":"nope","service_type":"x","description":"y"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("status transition validated", func(t *testing.T) {
		path := "/admin/orders/" + uuid.NewString() + "/status"
		if rec := env.do(http.MethodPatch, path, "admin-token", `{"status":"archived"}`); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if rec := env.do(http.MethodPatch, path, "admin-token", `{"status":"completed"}`); rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}

func TestAdminShellRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name         string
		token        string
		wantStatus   int
		wantState    admin.State
		wantRedirect string
	}{
		{"no session", "", http.StatusUnauthorized, admin.StateDenied, admin.LoginRedirect},
		{"bad token", "forged", http.StatusUnauthorized, admin.StateDenied, admin.LoginRedirect},
		{"not admin", "viewer-token", http.StatusForbidden, admin.StateDenied, admin.HomeRedirect},
		{"admin", "admin-token", http.StatusOK, admin.StateAuthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/admin", tt.token, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var view admin.View
			decodeBody(t, rec, &view)
			if view.State != tt.wantState || view.Redirect != tt.wantRedirect {
				t.Errorf("view = %+v", view)
			}
			if tt.wantState == admin.StateAuthorized && view.ActiveTab != admin.DefaultTab {
				t.Errorf("active tab = %q, want %q", view.ActiveTab, admin.DefaultTab)
			}
		})
	}

	t.Run("select tab", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/admin/tabs/orders", "admin-token", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var got struct {
			Shell admin.View        `json:"shell"`
			Data  map[string]string `json:"data"`
		}
		decodeBody(t, rec, &got)
		if got.Shell.ActiveTab != admin.TabOrders || got.Data["tab"] != "orders" {
			t.Errorf("response = %+v", got)
		}
	})

	t.Run("unknown tab", func(t *testing.T) {
		if rec := env.do(http.MethodGet, "/admin/tabs/billing", "admin-token", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("viewer cannot select tab", func(t *testing.T) {
		if rec := env.do(http.MethodGet, "/admin/tabs/orders", "viewer-token", ""); rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("sign out", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/admin/sign-out", "admin-token", "")
		var view admin.View
		decodeBody(t, rec, &view)
		if view.State != admin.StateDenied || view.Redirect != admin.LoginRedirect {
			t.Errorf("view = %+v", view)
		}
		if len(env.signer.signedOut) != 1 || env.signer.signedOut[0] != "s-admin" {
			t.Errorf("signed out = %v", env.signer.signedOut)
		}
	})
}

func TestRoleRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	if rec := env.do(http.MethodPut, "/admin/users/u-viewer/roles/editor", "admin-token", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("grant status = %d", rec.Code)
	}
	if len(env.roles.granted) != 1 || env.roles.granted[0] != "u-viewer:editor" {
		t.Errorf("granted = %v", env.roles.granted)
	}
	if rec := env.do(http.MethodPut, "/admin/users/u-viewer/roles/editor", "admin-token", ""); rec.Code != http.StatusConflict {
		t.Errorf("repeat grant status = %d, want 409", rec.Code)
	}
	if rec := env.do(http.MethodPut, "/admin/users/u-viewer/roles/owner", "admin-token", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown role status = %d, want 400", rec.Code)
	}
	if rec := env.do(http.MethodDelete, "/admin/users/u-admin/roles/admin", "admin-token", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("self revoke status = %d, want 400", rec.Code)
	}
}

func TestUploadMedia(t *testing.T) {
	env := newTestEnv(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("folder", "projects")
	part, err := mw.CreateFormFile("file", "logo.png")
	if err != nil {
		t.Fatal(err)
	}
	png := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 32))
	if _, err := part.Write(png); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env.uploader.contentType != "image/png" {
		t.Errorf("content type = %q, want sniffed image/png", env.uploader.contentType)
	}
	if env.uploader.body != string(png) {
		t.Error("uploaded body differs from the submitted file")
	}

	t.Run("storage not configured", func(t *testing.T) {
		h := newMediaHandler(nil)
		rec := httptest.NewRecorder()
		h.uploadMedia()(rec, httptest.NewRequest(http.MethodPost, "/admin/media", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, nil)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	if rec := preflight("https://evil.test"); rec.Code != http.StatusForbidden {
		t.Errorf("disallowed origin status = %d, want 403", rec.Code)
	}
	rec := preflight("https://studio.test")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://studio.test" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins(" https://a.test ,, https://b.test")
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Errorf("splitOrigins() = %v", got)
	}
}
