package api

import (
	"github.com/rpupo63/studio-site-backend/realtime"
)

// Dependencies are the collaborators the HTTP layer is built from.
// Media may be nil when object storage is not configured.
type Dependencies struct {
	Sections       sectionReader
	SectionRepo    sectionRepo
	Catalog        projectCatalog
	ProjectRepo    projectRepo
	ReviewRepo     reviewRepo
	OrderRepo      orderRepo
	MessageRepo    messageRepo
	RoleRepo       roleRepo
	Notifier       notifier
	Media          mediaUploader
	Gate           decisionResolver
	Shells         shellOpener
	Identity       signer
	Publisher      realtime.Publisher
	AllowedOrigins []string
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies) *routeHandlers {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}

	return &routeHandlers{
		sectionHandler: newSectionHandler(deps.Sections, deps.SectionRepo, publisher),
		viewHandler:    newViewHandler(deps.Sections),
		projectHandler: newProjectHandler(deps.Catalog, deps.ProjectRepo, publisher),
		reviewHandler:  newReviewHandler(deps.Catalog, deps.ReviewRepo, publisher),
		orderHandler:   newOrderHandler(deps.OrderRepo, deps.Notifier, publisher),
		messageHandler: newMessageHandler(deps.MessageRepo, deps.Notifier, publisher),
		adminHandler:   newAdminHandler(deps.Shells, deps.Identity, deps.RoleRepo, publisher),
		mediaHandler:   newMediaHandler(deps.Media),
	}
}
