package api

import (
	"github.com/dmuuo/portfolio-backend/database"
	"github.com/dmuuo/portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	blogHandler    blogHandler
	contactHandler contactHandler
	adminHandler   adminHandler
	authHandler    authHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, uploader *services.Uploader, cfg map[string]string) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo(), uploader),
		blogHandler:    newBlogHandler(database.BlogRepo(), uploader),
		contactHandler: newContactHandler(database.ContactRepo()),
		adminHandler:   newAdminHandler(database),
		authHandler:    newAuthHandler(database.UserRepo(), cfg),
	}
}
