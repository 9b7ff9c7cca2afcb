package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuuo/portfolio-backend/models"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAdmin)

	longDescription := strings.Repeat("x", 250)
	rr := env.do(t, multipartRequest(t, http.MethodPost, "/api/projects", [][2]string{
		{"title", "Stats Project"},
		{"description", longDescription},
		{"technologies", "Go"},
	}, token))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	createBlog(t, env, token, [][2]string{
		{"title", "Stats Post"},
		{"content", "<p>c</p>"},
		{"excerpt", "short excerpt"},
	})
	submitContact(t, env, "Stats message")

	rr = env.do(t, jsonRequest(t, http.MethodGet, "/api/admin/stats", nil, token))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	stats := decodeBody[DashboardStats](t, rr)

	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(1), stats.BlogPosts)
	assert.Equal(t, int64(1), stats.Messages)

	// Everything was just created, so the 7-day counts match the totals
	assert.Equal(t, int64(1), stats.NewProjects)
	assert.Equal(t, int64(1), stats.NewBlogPosts)
	assert.Equal(t, int64(1), stats.NewMessages)

	require.Len(t, stats.RecentActivity, 3)
	types := map[string]ActivityItem{}
	for _, item := range stats.RecentActivity {
		types[item.Type] = item
	}
	require.Contains(t, types, "project")
	require.Contains(t, types, "blog")
	require.Contains(t, types, "message")

	assert.Equal(t, "Stats Project", types["project"].Title)
	assert.Equal(t, "Message from Jamie", types["message"].Title)

	// Long descriptions are truncated for the feed
	snippet := types["project"].Description
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.LessOrEqual(t, len(snippet), activitySnippetLen+3)
}

func TestDashboardStatsActivityLimit(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleAdmin)

	for i := 0; i < 6; i++ {
		submitContact(t, env, "m")
	}
	for _, title := range []string{"A", "B", "C", "D", "E", "F"} {
		createBlog(t, env, token, [][2]string{
			{"title", "Post " + title},
			{"content", "<p>c</p>"},
			{"excerpt", "e"},
		})
	}

	rr := env.do(t, jsonRequest(t, http.MethodGet, "/api/admin/stats", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decodeBody[DashboardStats](t, rr)

	assert.Equal(t, int64(6), stats.Messages)
	assert.Equal(t, int64(6), stats.BlogPosts)

	// Five per collection are fetched and the merged feed caps at ten
	assert.Len(t, stats.RecentActivity, recentActivityLimit)
	for i := 1; i < len(stats.RecentActivity); i++ {
		assert.False(t, stats.RecentActivity[i-1].Date.Before(stats.RecentActivity[i].Date))
	}
}

func TestDashboardStatsRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(t, http.MethodGet, "/api/admin/stats", nil, ""))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
