package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the unauthenticated site routes
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Content sections
		r.Get("/sections", handlers.sectionHandler.getAllSections())
		r.Get("/sections/active", handlers.sectionHandler.getActiveSections())
		r.Get("/sections/{sectionType}", handlers.sectionHandler.getSection())
		r.Get("/sections/{sectionType}/metadata", handlers.sectionHandler.getSectionMetadata())

		// Rendered view-models
		r.Get("/views", handlers.viewHandler.getPage())
		r.Get("/views/{view}", handlers.viewHandler.getView())

		// Portfolio
		r.Get("/projects", handlers.projectHandler.getAllProjects())

		// Visitor submissions
		r.Get("/reviews", handlers.reviewHandler.getApprovedReviews())
		r.Post("/reviews", handlers.reviewHandler.submitReview())
		r.Post("/orders", handlers.orderHandler.submitOrder())
		r.Post("/messages", handlers.messageHandler.submitMessage())
	})
}

// setupAdminRoutes registers the back-office routes. Everything except shell
// resolution requires an authorized admin session.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, adminMiddleware adminMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.adminHandler.getShell())
		r.Get("/tabs/{tab}", handlers.adminHandler.selectTab())

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware.requireAdmin)

			r.Post("/sign-out", handlers.adminHandler.signOut())

			r.Post("/sections", handlers.sectionHandler.createSection())
			r.Put("/sections/{sectionID}", handlers.sectionHandler.updateSection())
			r.Delete("/sections/{sectionID}", handlers.sectionHandler.deleteSection())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Post("/projects/refresh", handlers.projectHandler.refreshProjects())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Patch("/reviews/{reviewID}", handlers.reviewHandler.moderateReview())
			r.Delete("/reviews/{reviewID}", handlers.reviewHandler.deleteReview())

			r.Patch("/orders/{orderID}/status", handlers.orderHandler.updateOrderStatus())

			r.Patch("/messages/{messageID}/read", handlers.messageHandler.markMessageRead())
			r.Delete("/messages/{messageID}", handlers.messageHandler.deleteMessage())

			r.Put("/users/{userID}/roles/{role}", handlers.adminHandler.grantRole())
			r.Delete("/users/{userID}/roles/{role}", handlers.adminHandler.revokeRole())

			r.Post("/media", handlers.mediaHandler.uploadMedia())
		})
	})
}
