package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/admin"
	"github.com/rpupo63/studio-site-backend/identity"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	sectionHandler sectionHandler
	viewHandler    viewHandler
	projectHandler projectHandler
	reviewHandler  reviewHandler
	orderHandler   orderHandler
	messageHandler messageHandler
	adminHandler   adminHandler
	mediaHandler   mediaHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// sectionReader is the live content section mirror.
type sectionReader interface {
	Section(sectionType string) (models.ContentSection, bool)
	Metadata(sectionType string) (map[string]interface{}, bool)
	Sections() []models.ContentSection
	ActiveSections() []models.ContentSection
	Err() string
	Loading() bool
}

type sectionRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContentSection, error)
	Add(ctx context.Context, section *models.ContentSection) error
	Update(ctx context.Context, section *models.ContentSection) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectCatalog interface {
	EnsureLoaded(ctx context.Context) error
	Refresh(ctx context.Context) error
	Projects() []models.ProjectWithStats
	Reviews() []models.Review
	Err() string
}

type projectRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepo interface {
	Add(ctx context.Context, review *models.Review) error
	SetFlags(ctx context.Context, id uuid.UUID, approved, featured *bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo interface {
	Add(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

type messageRepo interface {
	Add(ctx context.Context, message *models.ContactMessage) error
	MarkRead(ctx context.Context, id uuid.UUID, read bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type roleRepo interface {
	Grant(ctx context.Context, userID, role string) error
	Revoke(ctx context.Context, userID, role string) error
}

type notifier interface {
	Dispatch(ctx context.Context, msg services.Notification) error
}

type mediaUploader interface {
	Upload(ctx context.Context, folder, contentType string, body io.Reader, size int64) (string, error)
}

type decisionResolver interface {
	Resolve(ctx context.Context, token string) admin.Decision
}

type shellOpener interface {
	Open(ctx context.Context, token string) *admin.Shell
}

type signer interface {
	SignOut(ctx context.Context, session identity.Session) error
}
