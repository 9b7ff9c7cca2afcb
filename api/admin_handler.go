package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dmuuo/portfolio-backend/database"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newAdminHandler(db database.Database) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// ActivityItem is one entry in the dashboard's recent-activity feed.
type ActivityItem struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// DashboardStats aggregates totals, 7-day new counts, and recent activity
// across the three collections.
type DashboardStats struct {
	Projects       int64          `json:"projects"`
	BlogPosts      int64          `json:"blogPosts"`
	Messages       int64          `json:"messages"`
	NewProjects    int64          `json:"newProjects"`
	NewBlogPosts   int64          `json:"newBlogPosts"`
	NewMessages    int64          `json:"newMessages"`
	RecentActivity []ActivityItem `json:"recentActivity"`
}

const (
	recentPerCollection = 5
	recentActivityLimit = 10
	activitySnippetLen  = 100
)

// getDashboardStats returns aggregate counts plus the ten most recent
// items merged across projects, blog posts, and contact messages.
func (h adminHandler) getDashboardStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats DashboardStats
		var err error

		if stats.Projects, err = h.db.ProjectRepo().Count(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "projects", err))
			return
		}
		if stats.BlogPosts, err = h.db.BlogRepo().Count(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "blogs", err))
			return
		}
		if stats.Messages, err = h.db.ContactRepo().Count(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "contacts", err))
			return
		}

		oneWeekAgo := time.Now().AddDate(0, 0, -7)
		if stats.NewProjects, err = h.db.ProjectRepo().CountSince(oneWeekAgo); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "projects", err))
			return
		}
		if stats.NewBlogPosts, err = h.db.BlogRepo().CountSince(oneWeekAgo); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "blogs", err))
			return
		}
		if stats.NewMessages, err = h.db.ContactRepo().CountSince(oneWeekAgo); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "contacts", err))
			return
		}

		activity, err := h.recentActivity()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		stats.RecentActivity = activity

		h.responder.WriteJSON(w, stats)
	}
}

func (h adminHandler) recentActivity() ([]ActivityItem, error) {
	projects, err := h.db.ProjectRepo().Recent(recentPerCollection)
	if err != nil {
		return nil, wrapDatabaseError("find recent", "projects", err)
	}
	blogs, err := h.db.BlogRepo().Recent(recentPerCollection)
	if err != nil {
		return nil, wrapDatabaseError("find recent", "blogs", err)
	}
	contacts, err := h.db.ContactRepo().Recent(recentPerCollection)
	if err != nil {
		return nil, wrapDatabaseError("find recent", "contacts", err)
	}

	activity := make([]ActivityItem, 0, 3*recentPerCollection)
	for _, p := range projects {
		activity = append(activity, ActivityItem{
			Type:        "project",
			Title:       p.Title,
			Description: snippetOr(p.Description, "New project added"),
			Date:        p.CreatedAt,
		})
	}
	for _, b := range blogs {
		activity = append(activity, ActivityItem{
			Type:        "blog",
			Title:       b.Title,
			Description: snippetOr(b.Excerpt, "New blog post published"),
			Date:        b.CreatedAt,
		})
	}
	for _, c := range contacts {
		activity = append(activity, ActivityItem{
			Type:        "message",
			Title:       fmt.Sprintf("Message from %s", c.Name),
			Description: snippetOr(c.Message, "New contact message received"),
			Date:        c.CreatedAt,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})

	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}
	return activity, nil
}

// snippetOr truncates text for the activity feed, substituting a fallback
// when the source field is empty.
func snippetOr(text, fallback string) string {
	if text == "" {
		return fallback
	}
	runes := []rune(text)
	if len(runes) > activitySnippetLen {
		runes = runes[:activitySnippetLen]
	}
	return string(runes) + "..."
}
