package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

// User is the portfolio owner or a guest author. Blogs keep a createdBy
// back-reference to a User for attribution only.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         string    `json:"role" db:"role" gorm:"type:text;not null;default:'author'"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user may act on content owned by others.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
