package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dmuuo/portfolio-backend/database"
	"github.com/dmuuo/portfolio-backend/errs"
	"github.com/dmuuo/portfolio-backend/models"
	"github.com/dmuuo/portfolio-backend/services"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	uploader    *services.Uploader
	cache       *gocache.Cache
}

func newProjectHandler(projectRepo *database.ProjectRepo, uploader *services.Uploader) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		uploader:    uploader,
		cache:       gocache.New(listCacheTTL, listCacheSweep),
	}
}

// getAllProjects retrieves projects, filtered and sorted by query parameters.
// All filters are optional and combine with AND semantics. The default sort
// puts featured projects first, newest first within each group.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.ProjectFilter{
			Category: q.Get("category"),
			Status:   q.Get("status"),
			Sort:     q.Get("sort"),
		}
		// Only the literal strings "true"/"false" apply the featured filter
		if value, ok := parseBoolLiteral(q.Get("featured")); ok {
			filter.Featured = &value
		}

		cacheKey := fmt.Sprintf("projects:%s|%v|%s|%s", filter.Category, q.Get("featured"), filter.Status, filter.Sort)
		if cached, found := h.cache.Get(cacheKey); found {
			h.responder.WriteJSON(w, cached)
			return
		}

		projects, err := h.projectRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.cache.Set(cacheKey, projects, gocache.DefaultExpiration)
		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a single project by UUID or, failing that, by slug.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idOrSlug := chi.URLParam(r, "idOrSlug")
		if idOrSlug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project identifier"))
			return
		}

		var project *models.Project
		if id, err := uuid.Parse(idOrSlug); err == nil {
			found, err := h.projectRepo.FindByID(id)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
				return
			}
			project = found
		}

		if project == nil {
			found, err := h.projectRepo.FindBySlug(idOrSlug)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
				return
			}
			project = found
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project from a multipart form. Technologies
// may arrive as a comma-separated string or repeated entries; either way
// they are trimmed with empties dropped. An uploaded image is stored and
// recorded by its returned path.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("expected multipart form data"))
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}

		technologies := formList(r, "technologies")
		if len(technologies) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("technologies"))
			return
		}

		project := models.Project{
			Title:        title,
			Description:  description,
			Summary:      r.FormValue("summary"),
			Technologies: technologies,
			LiveLink:     r.FormValue("liveLink"),
		}
		if project.Summary == "" {
			project.Summary = models.Summarize(description)
		}
		project.RepositoryLink = r.FormValue("repositoryLink")
		project.Featured, _ = parseBoolLiteral(r.FormValue("featured"))

		var fieldErr error
		project.RepositoryType, fieldErr = pickEnum(r.FormValue("repositoryType"), models.ValidRepositoryType, models.DefaultRepositoryType, "repositoryType")
		if fieldErr == nil {
			project.Category, fieldErr = pickEnum(r.FormValue("category"), models.ValidProjectCategory, models.DefaultCategory, "category")
		}
		if fieldErr == nil {
			project.Status, fieldErr = pickEnum(r.FormValue("status"), models.ValidProjectStatus, models.DefaultProjectStatus, "status")
		}
		if fieldErr != nil {
			h.responder.WriteError(w, fieldErr)
			return
		}

		if s := r.FormValue("startDate"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("startDate", "expected an RFC3339 timestamp or YYYY-MM-DD date"))
				return
			}
			project.StartDate = t
		}
		if s := r.FormValue("endDate"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("endDate", "expected an RFC3339 timestamp or YYYY-MM-DD date"))
				return
			}
			project.EndDate = t
		}

		slug, err := h.uniqueSlug(title, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("derive slug for", "project", err))
			return
		}
		project.Slug = slug

		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			storedPath, err := h.uploader.Store(file, header)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to store uploaded image"))
				return
			}
			project.Image = storedPath
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.cache.Flush()
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject applies a partial multipart update. A newly uploaded image
// replaces the old one; the old file is deleted best effort and the update
// succeeds regardless. The slug is regenerated only when the title changes.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("expected multipart form data"))
			return
		}

		if formHas(r, "title") {
			title := r.FormValue("title")
			if title == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
				return
			}
			if title != project.Title {
				slug, err := h.uniqueSlug(title, project.ID)
				if err != nil {
					h.responder.WriteError(w, wrapDatabaseError("derive slug for", "project", err))
					return
				}
				project.Slug = slug
			}
			project.Title = title
		}
		if formHas(r, "description") {
			description := r.FormValue("description")
			if description == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
				return
			}
			project.Description = description
		}
		if formHas(r, "summary") {
			project.Summary = r.FormValue("summary")
		}
		if project.Summary == "" {
			project.Summary = models.Summarize(project.Description)
		}
		if formHas(r, "technologies") {
			technologies := formList(r, "technologies")
			if len(technologies) == 0 {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("technologies"))
				return
			}
			project.Technologies = technologies
		}
		if formHas(r, "liveLink") {
			project.LiveLink = r.FormValue("liveLink")
		}
		if formHas(r, "repositoryLink") {
			project.RepositoryLink = r.FormValue("repositoryLink")
		}
		if formHas(r, "featured") {
			project.Featured, _ = parseBoolLiteral(r.FormValue("featured"))
		}
		if formHas(r, "repositoryType") {
			project.RepositoryType, err = pickEnum(r.FormValue("repositoryType"), models.ValidRepositoryType, models.DefaultRepositoryType, "repositoryType")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		if formHas(r, "category") {
			project.Category, err = pickEnum(r.FormValue("category"), models.ValidProjectCategory, models.DefaultCategory, "category")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		if formHas(r, "status") {
			project.Status, err = pickEnum(r.FormValue("status"), models.ValidProjectStatus, models.DefaultProjectStatus, "status")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		if s := r.FormValue("startDate"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("startDate", "expected an RFC3339 timestamp or YYYY-MM-DD date"))
				return
			}
			project.StartDate = t
		}
		if s := r.FormValue("endDate"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("endDate", "expected an RFC3339 timestamp or YYYY-MM-DD date"))
				return
			}
			project.EndDate = t
		}

		oldImage := project.Image
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			storedPath, err := h.uploader.Store(file, header)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to store uploaded image"))
				return
			}
			project.Image = storedPath
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		// Old image cleanup is non-transactional: a crash between the write
		// above and this delete leaves an orphaned file, not a broken record.
		if oldImage != "" && oldImage != project.Image {
			h.uploader.Remove(oldImage)
		}

		h.cache.Flush()
		h.responder.WriteJSON(w, project)
	}
}

// deleteProject removes the record and best-effort deletes its image file.
// The deleted id is returned for caller reconciliation.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.uploader.Remove(project.Image)

		h.cache.Flush()
		h.responder.WriteJSON(w, map[string]string{
			"message": "Project deleted successfully",
			"id":      projectID.String(),
		})
	}
}

// toggleFeatured flips the featured flag and sets the display-order hint to
// 1 when newly featured, 0 otherwise. Single read-modify-write per request;
// concurrent toggles on the same id are last write wins.
func (h projectHandler) toggleFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		project.Featured = !project.Featured
		if project.Featured {
			project.Order = 1
		} else {
			project.Order = 0
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.cache.Flush()
		h.responder.WriteJSON(w, project)
	}
}

// uniqueSlug derives a slug from the title and disambiguates collisions with
// a timestamp suffix, excluding the project being updated. The unique index
// remains the backstop; a racing insert surfaces as a 409.
func (h projectHandler) uniqueSlug(title string, excludeID uuid.UUID) (string, error) {
	slug := models.Slugify(title)
	exists, err := h.projectRepo.SlugExists(slug, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		slug = models.SuffixSlug(slug)
	}
	return slug, nil
}
