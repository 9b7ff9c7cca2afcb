package models

// Shared enumeration tables. Server-side validation reads these so the
// accepted values live in exactly one place.

var ProjectCategories = []string{
	"web", "mobile", "desktop", "ai", "blockchain", "game",
	"other", "library", "api", "backend", "ui",
}

var ProjectStatuses = []string{"in-progress", "completed", "archived", "planned"}

var RepositoryTypes = []string{"github", "gitlab", "bitbucket", "other"}

var ContactStatuses = []string{"unread", "read", "replied", "resolved"}

const (
	DefaultCategory       = "web"
	DefaultProjectStatus  = "completed"
	DefaultRepositoryType = "github"
	DefaultContactStatus  = "unread"
)

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func ValidProjectCategory(v string) bool { return contains(ProjectCategories, v) }

func ValidProjectStatus(v string) bool { return contains(ProjectStatuses, v) }

func ValidRepositoryType(v string) bool { return contains(RepositoryTypes, v) }

func ValidContactStatus(v string) bool { return contains(ContactStatuses, v) }
