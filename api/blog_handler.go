package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dmuuo/portfolio-backend/database"
	"github.com/dmuuo/portfolio-backend/errs"
	"github.com/dmuuo/portfolio-backend/models"
	"github.com/dmuuo/portfolio-backend/query"
	"github.com/dmuuo/portfolio-backend/services"
)

const publishedBlogsCacheKey = "blogs:published"

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
	uploader  *services.Uploader
	cache     *gocache.Cache
}

func newBlogHandler(blogRepo *database.BlogRepo, uploader *services.Uploader) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
		uploader:  uploader,
		cache:     gocache.New(listCacheTTL, listCacheSweep),
	}
}

// getPublishedBlogs lists published posts. Optional query parameters:
// search (case-insensitive substring over title/excerpt/content), tags
// (comma-separated; a post must carry every selected tag), and sort
// (date-desc default, date-asc, title-asc, title-desc, popularity).
// Unpublished posts never appear here; see the admin variant.
func (h blogHandler) getPublishedBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.publishedBlogs()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}

		q := r.URL.Query()
		result := query.Apply(blogs, q.Get("search"), models.SplitList(q.Get("tags")), q.Get("sort"))
		h.responder.WriteJSON(w, result)
	}
}

func (h blogHandler) publishedBlogs() ([]*models.Blog, error) {
	if cached, found := h.cache.Get(publishedBlogsCacheKey); found {
		return cached.([]*models.Blog), nil
	}
	blogs, err := h.blogRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	h.cache.Set(publishedBlogsCacheKey, blogs, gocache.DefaultExpiration)
	return blogs, nil
}

// getAllBlogsAdmin lists every post, unpublished included.
func (h blogHandler) getAllBlogsAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogRepo.FindAll(false)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}
		h.responder.WriteJSON(w, blogs)
	}
}

// getBlogBySlug returns a single post and bumps its view counter, which
// feeds the popularity sort.
func (h blogHandler) getBlogBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		blog, err := h.blogRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		if err := h.blogRepo.IncrementViewCount(blog.ID); err != nil {
			h.logger.Warn().Err(err).Str("slug", slug).Msg("Failed to increment view count")
		}

		h.responder.WriteJSON(w, blog)
	}
}

// createBlog creates a post from a multipart form. The slug is derived from
// the title; on collision the last four digits of the current timestamp are
// appended. The authenticated caller becomes the owner.
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("expected multipart form data"))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		content := strings.TrimSpace(r.FormValue("content"))
		excerpt := strings.TrimSpace(r.FormValue("excerpt"))
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if excerpt == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("excerpt"))
			return
		}

		slug, err := h.uniqueSlug(title, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("derive slug for", "blog", err))
			return
		}

		blog := models.Blog{
			Title:       title,
			Slug:        slug,
			Content:     content,
			Excerpt:     excerpt,
			Tags:        formList(r, "tags"),
			CreatedByID: userID,
			Published:   true,
		}
		if value, ok := parseBoolLiteral(r.FormValue("published")); ok {
			blog.Published = value
		}

		if file, header, err := r.FormFile("coverImage"); err == nil {
			defer file.Close()
			storedPath, err := h.uploader.Store(file, header)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to store cover image"))
				return
			}
			blog.CoverImage = storedPath
		}

		if err := h.blogRepo.Add(&blog); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		h.cache.Flush()
		h.responder.WriteJSONStatus(w, http.StatusCreated, blog)
	}
}

// updateBlog applies a partial update. Only the original author or an admin
// may update; anyone else gets a 403, never a 404. The slug is regenerated
// only when the title actually changed, with the same collision policy
// checked against all other posts.
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.loadOwnedBlog(w, r)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("expected multipart form data"))
			return
		}

		if formHas(r, "title") {
			title := strings.TrimSpace(r.FormValue("title"))
			if title == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
				return
			}
			if title != blog.Title {
				slug, err := h.uniqueSlug(title, blog.ID)
				if err != nil {
					h.responder.WriteError(w, wrapDatabaseError("derive slug for", "blog", err))
					return
				}
				blog.Slug = slug
			}
			blog.Title = title
		}
		if formHas(r, "content") {
			content := strings.TrimSpace(r.FormValue("content"))
			if content == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
				return
			}
			blog.Content = content
		}
		if formHas(r, "excerpt") {
			excerpt := strings.TrimSpace(r.FormValue("excerpt"))
			if excerpt == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("excerpt"))
				return
			}
			blog.Excerpt = excerpt
		}
		if formHas(r, "tags") {
			blog.Tags = formList(r, "tags")
		}
		if value, ok := parseBoolLiteral(r.FormValue("published")); ok {
			blog.Published = value
		}

		oldCover := blog.CoverImage
		if file, header, err := r.FormFile("coverImage"); err == nil {
			defer file.Close()
			storedPath, err := h.uploader.Store(file, header)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to store cover image"))
				return
			}
			blog.CoverImage = storedPath
		}

		if err := h.blogRepo.Update(blog); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		if oldCover != "" && oldCover != blog.CoverImage {
			h.uploader.Remove(oldCover)
		}

		h.cache.Flush()
		h.responder.WriteJSON(w, blog)
	}
}

// deleteBlog removes a post, subject to the same owner-or-admin check.
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.loadOwnedBlog(w, r)
		if !ok {
			return
		}

		if err := h.blogRepo.Delete(blog.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		h.uploader.Remove(blog.CoverImage)

		h.cache.Flush()
		h.responder.WriteJSON(w, map[string]string{
			"message": "Blog deleted successfully",
			"id":      blog.ID.String(),
		})
	}
}

// loadOwnedBlog resolves the blog from the URL and enforces the ownership
// boundary. Not-found and forbidden are reported distinctly.
func (h blogHandler) loadOwnedBlog(w http.ResponseWriter, r *http.Request) (*models.Blog, bool) {
	blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
		return nil, false
	}

	blog, err := h.blogRepo.FindByID(blogID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
		return nil, false
	}
	if blog == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
		return nil, false
	}

	userID, err := ctxGetUserID(r.Context())
	if err != nil {
		h.responder.WriteError(w, errs.Unauthorized)
		return nil, false
	}
	if blog.CreatedByID != userID && ctxGetUserRole(r.Context()) != models.RoleAdmin {
		h.responder.WriteError(w, errs.NewNotOwnerError("blog"))
		return nil, false
	}

	return blog, true
}

func (h blogHandler) uniqueSlug(title string, excludeID uuid.UUID) (string, error) {
	slug := models.Slugify(title)
	exists, err := h.blogRepo.SlugExists(slug, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		slug = models.SuffixSlug(slug)
	}
	return slug, nil
}
