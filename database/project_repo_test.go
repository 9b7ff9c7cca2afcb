package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuuo/portfolio-backend/models"
)

func seedProject(t *testing.T, repo *ProjectRepo, title, category, status string, featured bool, createdAt time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:        title,
		Slug:         models.Slugify(title),
		Description:  title + " description",
		Summary:      title + " summary",
		Technologies: []string{"Go"},
		Category:     category,
		Status:       status,
		Featured:     featured,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Add(project))
	return project
}

func TestSortClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{"", "featured DESC, created_at DESC"},
		{"-featured,-createdAt", "featured DESC, created_at DESC"},
		{"title", "title"},
		{"-title", "title DESC"},
		{"title,-createdAt", "title, created_at DESC"},
		{"order", "display_order"},
		// Fields outside the whitelist are dropped; a fully bogus sort
		// falls back to the default
		{"title,password", "title"},
		{"password;DROP TABLE projects", "featured DESC, created_at DESC"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sortClause(tc.sort), "sort %q", tc.sort)
	}
}

func TestFindAllDefaultSort(t *testing.T) {
	repo := NewProjectRepo(testDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedProject(t, repo, "plain old", "web", "completed", false, base)
	seedProject(t, repo, "plain new", "web", "completed", false, base.Add(48*time.Hour))
	seedProject(t, repo, "featured old", "web", "completed", true, base.Add(time.Hour))
	seedProject(t, repo, "featured new", "web", "completed", true, base.Add(24*time.Hour))

	projects, err := repo.FindAll(ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 4)

	// Featured first, newest first within each group
	assert.Equal(t, "featured new", projects[0].Title)
	assert.Equal(t, "featured old", projects[1].Title)
	assert.Equal(t, "plain new", projects[2].Title)
	assert.Equal(t, "plain old", projects[3].Title)
}

func TestFindAllFilters(t *testing.T) {
	repo := NewProjectRepo(testDB(t))
	now := time.Now()

	seedProject(t, repo, "web done", "web", "completed", true, now)
	seedProject(t, repo, "web wip", "web", "in-progress", false, now)
	seedProject(t, repo, "mobile done", "mobile", "completed", false, now)

	projects, err := repo.FindAll(ProjectFilter{Category: "web"})
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	projects, err = repo.FindAll(ProjectFilter{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	featured := true
	projects, err = repo.FindAll(ProjectFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "web done", projects[0].Title)

	// Filters combine with AND semantics
	projects, err = repo.FindAll(ProjectFilter{Category: "web", Status: "completed"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "web done", projects[0].Title)
}

func TestFindBySlugAndID(t *testing.T) {
	repo := NewProjectRepo(testDB(t))
	seeded := seedProject(t, repo, "My Project", "web", "completed", false, time.Now())

	byID, err := repo.FindByID(seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, seeded.Title, byID.Title)

	bySlug, err := repo.FindBySlug("my-project")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, seeded.ID, bySlug.ID)

	missing, err := repo.FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectSlugExists(t *testing.T) {
	repo := NewProjectRepo(testDB(t))
	seeded := seedProject(t, repo, "My Project", "web", "completed", false, time.Now())

	exists, err := repo.SlugExists("my-project", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// The project being updated does not collide with itself
	exists, err = repo.SlugExists("my-project", seeded.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists("other-slug", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProjectSlugUniqueConstraint(t *testing.T) {
	repo := NewProjectRepo(testDB(t))
	seedProject(t, repo, "My Project", "web", "completed", false, time.Now())

	dup := &models.Project{
		Title:        "My Project",
		Slug:         "my-project",
		Description:  "duplicate",
		Technologies: []string{"Go"},
	}
	err := repo.Add(dup)
	require.Error(t, err)
}

func TestProjectCounts(t *testing.T) {
	repo := NewProjectRepo(testDB(t))
	now := time.Now()

	seedProject(t, repo, "recent", "web", "completed", false, now.Add(-time.Hour))
	seedProject(t, repo, "ancient", "web", "completed", false, now.AddDate(0, 0, -30))

	total, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	fresh, err := repo.CountSince(now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.EqualValues(t, 1, fresh)

	recent, err := repo.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "recent", recent[0].Title)
}
