// Package query implements the in-memory filter and sort engine for blog
// listings: free-text search, tag-intersection filtering, and the named
// sort keys. All functions are pure; ties are left in storage order.
package query

import (
	"sort"
	"strings"

	"github.com/dmuuo/portfolio-backend/models"
)

// Sort keys accepted by SortBlogs.
const (
	SortDateDesc   = "date-desc"
	SortDateAsc    = "date-asc"
	SortTitleAsc   = "title-asc"
	SortTitleDesc  = "title-desc"
	SortPopularity = "popularity"
)

var BlogSortKeys = []string{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortPopularity}

// SearchBlogs keeps posts whose title, excerpt, or raw content contains the
// term, case-insensitively. Content is matched as-is, HTML included. An
// empty term keeps everything.
func SearchBlogs(blogs []*models.Blog, term string) []*models.Blog {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return blogs
	}
	out := make([]*models.Blog, 0, len(blogs))
	for _, b := range blogs {
		if strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Excerpt), term) ||
			strings.Contains(strings.ToLower(b.Content), term) {
			out = append(out, b)
		}
	}
	return out
}

// FilterByTags keeps posts carrying every selected tag (intersection
// semantics, not union). An empty selection keeps everything.
func FilterByTags(blogs []*models.Blog, selected []string) []*models.Blog {
	if len(selected) == 0 {
		return blogs
	}
	out := make([]*models.Blog, 0, len(blogs))
	for _, b := range blogs {
		if hasAllTags(b.Tags, selected) {
			out = append(out, b)
		}
	}
	return out
}

func hasAllTags(tags []string, selected []string) bool {
	for _, want := range selected {
		found := false
		for _, have := range tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SortBlogs orders posts by the given key. Unknown keys and the default fall
// back to date-desc. Popularity sorts by view count descending; the sort is
// stable so ties keep storage order.
func SortBlogs(blogs []*models.Blog, key string) []*models.Blog {
	sorted := make([]*models.Blog, len(blogs))
	copy(sorted, blogs)

	switch key {
	case SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case SortTitleAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) > strings.ToLower(sorted[j].Title)
		})
	case SortPopularity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ViewCount > sorted[j].ViewCount
		})
	default: // SortDateDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}

// Apply runs search, tag filtering, and sorting in that order.
func Apply(blogs []*models.Blog, search string, tags []string, sortKey string) []*models.Blog {
	filtered := SearchBlogs(blogs, search)
	filtered = FilterByTags(filtered, tags)
	return SortBlogs(filtered, sortKey)
}
