package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact represents a message submitted through the public contact form.
// It is only ever mutated by admin status transitions.
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" db:"status" gorm:"type:text;not null;default:'unread'"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
