package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a portfolio project with metadata
type Project struct {
	ID             uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title          string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug           string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description    string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Summary        string                      `json:"summary" db:"summary" gorm:"type:text"`
	Image          string                      `json:"image" db:"image" gorm:"type:text"`
	Technologies   datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	LiveLink       string                      `json:"liveLink" db:"live_link" gorm:"type:text;default:''"`
	RepositoryLink string                      `json:"repositoryLink" db:"repository_link" gorm:"type:text;default:''"`
	RepositoryType string                      `json:"repositoryType" db:"repository_type" gorm:"type:text;default:'github'"`
	Featured       bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	Order          int                         `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
	Category       string                      `json:"category" db:"category" gorm:"type:text;default:'web'"`
	Status         string                      `json:"status" db:"status" gorm:"type:text;default:'completed'"`
	StartDate      *time.Time                  `json:"startDate,omitempty" db:"start_date"`
	EndDate        *time.Time                  `json:"endDate,omitempty" db:"end_date"`
	CreatedAt      time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
