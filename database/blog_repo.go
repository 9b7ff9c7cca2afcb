package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmuuo/portfolio-backend/models"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// FindAll returns blog posts newest first, restricted to published posts
// when publishedOnly is set. The author is preloaded for attribution.
func (r *BlogRepo) FindAll(publishedOnly bool) ([]*models.Blog, error) {
	tx := r.db.Preload("CreatedBy").Order("created_at DESC")
	if publishedOnly {
		tx = tx.Where("published = ?", true)
	}
	var blogs []*models.Blog
	err := tx.Find(&blogs).Error
	return blogs, err
}

// FindByID returns a blog post by its ID, or nil when absent.
func (r *BlogRepo) FindByID(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("CreatedBy").First(&blog, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

// FindBySlug returns a blog post by its slug, or nil when absent.
func (r *BlogRepo) FindBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("CreatedBy").First(&blog, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

// SlugExists reports whether any post other than excludeID carries the slug.
func (r *BlogRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	tx := r.db.Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

// Add inserts a new blog post into the database
func (r *BlogRepo) Add(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update updates an existing blog post in the database
func (r *BlogRepo) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// Delete removes a blog post from the database by id
func (r *BlogRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Blog{}, "id = ?", id).Error
}

// IncrementViewCount bumps the view counter in a single statement. The
// counter feeds the popularity sort; losing a race between two reads is
// acceptable here.
func (r *BlogRepo) IncrementViewCount(id uuid.UUID) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Count returns the total number of blog posts.
func (r *BlogRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Count(&count).Error
	return count, err
}

// CountSince returns the number of posts created at or after the cutoff.
func (r *BlogRepo) CountSince(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Where("created_at >= ?", cutoff).Count(&count).Error
	return count, err
}

// Recent returns the n most recently created posts.
func (r *BlogRepo) Recent(n int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Order("created_at DESC").Limit(n).Find(&blogs).Error
	return blogs, err
}
