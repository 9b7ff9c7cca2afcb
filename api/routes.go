package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the authenticated admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/projects/{idOrSlug}", handlers.projectHandler.getProject())

		r.Get("/api/blogs", handlers.blogHandler.getPublishedBlogs())
		r.Get("/api/blogs/slug/{slug}", handlers.blogHandler.getBlogBySlug())

		r.Post("/api/contact", handlers.contactHandler.submitContactForm())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/auth/me", handlers.authHandler.getCurrentUser())

		r.Post("/api/projects", handlers.projectHandler.createProject())
		r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Patch("/api/projects/{projectID}/toggle-featured", handlers.projectHandler.toggleFeatured())

		r.Get("/api/blogs/admin", handlers.blogHandler.getAllBlogsAdmin())
		r.Post("/api/blogs", handlers.blogHandler.createBlog())
		r.Put("/api/blogs/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/api/blogs/{blogID}", handlers.blogHandler.deleteBlog())

		r.Get("/api/contact", handlers.contactHandler.getAllContacts())
		r.Patch("/api/contact/{contactID}", handlers.contactHandler.updateContactStatus())
		r.Delete("/api/contact/{contactID}", handlers.contactHandler.deleteContact())

		r.Get("/api/admin/stats", handlers.adminHandler.getDashboardStats())
	})
}
