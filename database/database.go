package database

import (
	"gorm.io/gorm"

	"github.com/dmuuo/portfolio-backend/models"
)

type Database struct {
	projectRepo *ProjectRepo
	blogRepo    *BlogRepo
	contactRepo *ContactRepo
	userRepo    *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		blogRepo:    NewBlogRepo(db),
		contactRepo: NewContactRepo(db),
		userRepo:    NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Blog{},
		&models.Contact{},
	)
}
