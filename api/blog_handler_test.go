package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuuo/portfolio-backend/models"
)

func createBlog(t *testing.T, env *testEnv, token string, fields [][2]string) models.Blog {
	t.Helper()
	rr := env.do(t, multipartRequest(t, http.MethodPost, "/api/blogs", fields, token))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[models.Blog](t, rr)
}

func TestCreateBlog(t *testing.T) {
	env := newTestEnv(t)
	author, token := env.seedUser(t, models.RoleAuthor)

	blog := createBlog(t, env, token, [][2]string{
		{"title", "Hello, World!"},
		{"content", "<p>First post</p>"},
		{"excerpt", "first"},
		{"tags", "go, backend ,  "},
	})

	assert.Equal(t, "hello-world", blog.Slug)
	assert.Equal(t, []string{"go", "backend"}, []string(blog.Tags))
	assert.True(t, blog.Published)

	// Ownership is taken from the token, not the body
	stored, err := env.db.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, author.ID, stored.CreatedByID)
}

func TestCreateBlogValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAuthor)

	cases := []struct {
		name   string
		fields [][2]string
	}{
		{"missing title", [][2]string{{"content", "c"}, {"excerpt", "e"}}},
		{"blank title", [][2]string{{"title", "   "}, {"content", "c"}, {"excerpt", "e"}}},
		{"missing content", [][2]string{{"title", "t"}, {"excerpt", "e"}}},
		{"missing excerpt", [][2]string{{"title", "t"}, {"content", "c"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, multipartRequest(t, http.MethodPost, "/api/blogs", tc.fields, token))
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestBlogSlugCollision(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAuthor)

	fields := [][2]string{
		{"title", "Same Title"},
		{"content", "<p>c</p>"},
		{"excerpt", "e"},
	}
	first := createBlog(t, env, token, fields)
	second := createBlog(t, env, token, fields)

	// Two posts with the same title get distinct, non-empty slugs
	assert.NotEmpty(t, first.Slug)
	assert.NotEmpty(t, second.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "same-title")
}

func TestUnpublishedBlogVisibility(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAuthor)

	createBlog(t, env, token, [][2]string{
		{"title", "Public Post"},
		{"content", "<p>c</p>"},
		{"excerpt", "e"},
	})
	draft := createBlog(t, env, token, [][2]string{
		{"title", "Draft Post"},
		{"content", "<p>c</p>"},
		{"excerpt", "e"},
		{"published", "false"},
	})

	// Absent from the public listing
	rr := env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	public := decodeBody[[]models.Blog](t, rr)
	require.Len(t, public, 1)
	assert.Equal(t, "Public Post", public[0].Title)

	// Present in the admin listing
	rr = env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs/admin", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)
	all := decodeBody[[]models.Blog](t, rr)
	assert.Len(t, all, 2)

	found := false
	for _, b := range all {
		if b.ID == draft.ID {
			found = true
		}
	}
	assert.True(t, found, "draft missing from admin listing")
}

func TestBlogAuthorizationBoundary(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.seedUser(t, models.RoleAuthor)
	_, strangerToken := env.seedUser(t, models.RoleAuthor)
	_, adminToken := env.seedUser(t, models.RoleAdmin)

	blog := createBlog(t, env, ownerToken, [][2]string{
		{"title", "Guarded Post"},
		{"content", "<p>c</p>"},
		{"excerpt", "e"},
	})
	path := "/api/blogs/" + blog.ID.String()

	// Neither owner nor admin: 403, not 404 and not 200
	rr := env.do(t, multipartRequest(t, http.MethodPut, path, [][2]string{{"excerpt", "hijacked"}}, strangerToken))
	assert.Equal(t, http.StatusForbidden, rr.Code, rr.Body.String())

	rr = env.do(t, jsonRequest(t, http.MethodDelete, path, nil, strangerToken))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// The owner may update
	rr = env.do(t, multipartRequest(t, http.MethodPut, path, [][2]string{{"excerpt", "revised"}}, ownerToken))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "revised", decodeBody[models.Blog](t, rr).Excerpt)

	// An admin may delete someone else's post
	rr = env.do(t, jsonRequest(t, http.MethodDelete, path, nil, adminToken))
	assert.Equal(t, http.StatusOK, rr.Code)

	// A missing post is 404, distinct from forbidden
	rr = env.do(t, jsonRequest(t, http.MethodDelete, "/api/blogs/"+uuid.NewString(), nil, ownerToken))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateBlogSlugOnlyChangesWithTitle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAuthor)

	blog := createBlog(t, env, token, [][2]string{
		{"title", "Stable Title"},
		{"content", "<p>c</p>"},
		{"excerpt", "e"},
	})
	path := "/api/blogs/" + blog.ID.String()

	rr := env.do(t, multipartRequest(t, http.MethodPut, path, [][2]string{{"content", "<p>edited</p>"}}, token))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "stable-title", decodeBody[models.Blog](t, rr).Slug)

	// Re-submitting the unchanged title also keeps the slug
	rr = env.do(t, multipartRequest(t, http.MethodPut, path, [][2]string{{"title", "Stable Title"}}, token))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "stable-title", decodeBody[models.Blog](t, rr).Slug)

	rr = env.do(t, multipartRequest(t, http.MethodPut, path, [][2]string{{"title", "Fresh Title"}}, token))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fresh-title", decodeBody[models.Blog](t, rr).Slug)
}

func TestGetBlogBySlugIncrementsViewCount(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAuthor)

	blog := createBlog(t, env, token, [][2]string{
		{"title", "Viewed Post"},
		{"content", "<p>c</p>"},
		{"excerpt", "e"},
	})

	rr := env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs/slug/viewed-post", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs/slug/viewed-post", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)

	stored, err := env.db.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 2, stored.ViewCount)

	rr = env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs/slug/no-such-post", nil, ""))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPublicBlogListQueryEngine(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAuthor)

	createBlog(t, env, token, [][2]string{
		{"title", "Go concurrency"},
		{"content", "<p>channels</p>"},
		{"excerpt", "go stuff"},
		{"tags", "go,systems"},
	})
	createBlog(t, env, token, [][2]string{
		{"title", "Rust ownership"},
		{"content", "<p>borrowing</p>"},
		{"excerpt", "rust stuff"},
		{"tags", "rust,systems"},
	})

	rr := env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs?search=concurrency", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	blogs := decodeBody[[]models.Blog](t, rr)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Go concurrency", blogs[0].Title)

	// Tag intersection: both tags must be present
	rr = env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs?tags=go,systems", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	blogs = decodeBody[[]models.Blog](t, rr)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Go concurrency", blogs[0].Title)

	rr = env.do(t, jsonRequest(t, http.MethodGet, "/api/blogs?tags=systems", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]models.Blog](t, rr), 2)
}
