package api

import (
	"net/http"

	"github.com/lib/pq"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   projectCatalog
	repo      projectRepo
	publisher realtime.Publisher
}

func newProjectHandler(catalog projectCatalog, repo projectRepo, publisher realtime.Publisher) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalog,
		repo:      repo,
		publisher: publisher,
	}
}

// ProjectCollection represents the portfolio with review statistics
type ProjectCollection struct {
	Projects []models.ProjectWithStats `json:"projects"`
	Total    int                       `json:"total"`
	Error    string                    `json:"error,omitempty"`
}

func (h projectHandler) collection() ProjectCollection {
	projects := h.catalog.Projects()
	return ProjectCollection{Projects: projects, Total: len(projects), Error: h.catalog.Err()}
}

// getAllProjects retrieves all projects with their review statistics
// @Summary Get all projects
// @Description Projects ordered by sort order with review counts and average rating from approved reviews
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 503 {object} ErrorResponse "Backend unavailable and nothing cached"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalog.EnsureLoaded(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.collection())
	}
}

// refreshProjects re-reads projects and reviews
// @Summary Refresh projects
// @Description Re-fetches projects and approved reviews. On failure the previous list is returned with the error text.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProjectCollection
// @Router /admin/projects/refresh [post]
func (h projectHandler) refreshProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalog.Refresh(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Project refresh failed, serving previous list")
		}
		h.responder.WriteJSON(w, h.collection())
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Admin
// @Accept json
// @Produce json
// @Param project body ProjectPayload true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ProjectPayload
		if err := decodeAndValidate(w, r, &payload, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{}
		applyProjectPayload(&project, payload)

		if err := h.repo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}
		h.publish(realtime.EventInsert, project)

		h.responder.WriteStatusJSON(w, http.StatusCreated, project)
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Tags Admin
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body ProjectPayload true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload ProjectPayload
		if err := decodeAndValidate(w, r, &payload, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.repo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		applyProjectPayload(project, payload)

		if err := h.repo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		h.publish(realtime.EventUpdate, *project)

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project
// @Summary Delete project
// @Tags Admin
// @Param projectID path string true "Project ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}
		h.publish(realtime.EventDelete, models.Project{ID: projectID})

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h projectHandler) publish(eventType realtime.EventType, project models.Project) {
	h.publisher.Publish(realtime.Event{Topic: project.TableName(), Type: eventType, RecordID: project.ID.String()})
}

func applyProjectPayload(project *models.Project, payload ProjectPayload) {
	project.Title = cleanText(payload.Title)
	project.Description = cleanText(payload.Description)
	project.ImageURL = payload.ImageURL
	project.GithubURL = payload.GithubURL
	project.DemoURL = payload.DemoURL
	project.Category = cleanText(payload.Category)
	project.IsFeatured = payload.IsFeatured
	project.SortOrder = payload.SortOrder

	technologies := make(pq.StringArray, 0, len(payload.Technologies))
	for _, tech := range payload.Technologies {
		if tech = cleanText(tech); tech != "" {
			technologies = append(technologies, tech)
		}
	}
	project.Technologies = technologies
}
