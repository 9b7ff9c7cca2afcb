package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmuuo/portfolio-backend/models"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns all contact messages, newest first.
func (r *ContactRepo) FindAll() ([]*models.Contact, error) {
	var contacts []*models.Contact
	err := r.db.Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

// FindByID returns a contact message by its ID, or nil when absent.
func (r *ContactRepo) FindByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

// Add inserts a new contact message into the database
func (r *ContactRepo) Add(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// UpdateStatus sets the message status. Enum membership is validated at the
// handler boundary; no transition ordering is enforced here.
func (r *ContactRepo) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Contact{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a contact message from the database by id
func (r *ContactRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Contact{}, "id = ?", id).Error
}

// Count returns the total number of contact messages.
func (r *ContactRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).Count(&count).Error
	return count, err
}

// CountSince returns the number of messages created at or after the cutoff.
func (r *ContactRepo) CountSince(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).Where("created_at >= ?", cutoff).Count(&count).Error
	return count, err
}

// Recent returns the n most recently received messages.
func (r *ContactRepo) Recent(n int) ([]*models.Contact, error) {
	var contacts []*models.Contact
	err := r.db.Order("created_at DESC").Limit(n).Find(&contacts).Error
	return contacts, err
}
