package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmuuo/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectFilter holds the optional listing parameters. Fields left at their
// zero value are not applied; filters combine with AND semantics.
type ProjectFilter struct {
	Category string
	Featured *bool
	Status   string
	Sort     string
}

// DefaultProjectSort lists featured projects first, newest first within
// each group.
const DefaultProjectSort = "-featured,-createdAt"

// sortableColumns maps the client-facing sort field names onto columns.
// Fields outside this whitelist are ignored.
var sortableColumns = map[string]string{
	"featured":  "featured",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"order":     "display_order",
	"startDate": "start_date",
	"endDate":   "end_date",
	"category":  "category",
	"status":    "status",
}

// sortClause translates a comma-joined sort parameter ("-featured,-createdAt")
// into an ORDER BY clause. A leading dash means descending.
func sortClause(sort string) string {
	if sort == "" {
		sort = DefaultProjectSort
	}

	var clauses []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		column, ok := sortableColumns[field]
		if !ok {
			continue
		}
		if desc {
			column += " DESC"
		}
		clauses = append(clauses, column)
	}
	if len(clauses) == 0 {
		return "featured DESC, created_at DESC"
	}
	return strings.Join(clauses, ", ")
}

// FindAll returns projects matching the filter, ordered by its sort parameter.
func (r *ProjectRepo) FindAll(filter ProjectFilter) ([]*models.Project, error) {
	tx := r.db.Model(&models.Project{})
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		tx = tx.Where("featured = ?", *filter.Featured)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}

	var projects []*models.Project
	err := tx.Order(sortClause(filter.Sort)).Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when absent.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns a project by its slug, or nil when absent.
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether any project other than excludeID carries the slug.
func (r *ProjectRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	tx := r.db.Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// Count returns the total number of projects.
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// CountSince returns the number of projects created at or after the cutoff.
func (r *ProjectRepo) CountSince(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("created_at >= ?", cutoff).Count(&count).Error
	return count, err
}

// Recent returns the n most recently created projects.
func (r *ProjectRepo) Recent(n int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("created_at DESC").Limit(n).Find(&projects).Error
	return projects, err
}
