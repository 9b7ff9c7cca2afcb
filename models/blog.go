package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Blog represents a blog post with metadata. Content is the raw HTML
// produced by the rich-text editor.
type Blog struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Content     string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt     string                      `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	CoverImage  string                      `json:"coverImage" db:"cover_image" gorm:"type:text"`
	Tags        datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	CreatedByID uuid.UUID                   `json:"-" db:"created_by_id" gorm:"type:uuid;not null;index"`
	CreatedBy   *User                       `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID;references:ID"`
	Published   bool                        `json:"published" db:"published" gorm:"not null;default:true"`
	ViewCount   int                         `json:"viewCount" db:"view_count" gorm:"not null;default:0"`
	CreatedAt   time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
