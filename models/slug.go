package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
	slugTrimRe     = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-safe identifier from a title: lowercase, characters
// outside [a-z0-9\s_-] stripped, runs of whitespace/underscore/dash collapsed
// into a single dash, leading and trailing dashes trimmed.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return slugTrimRe.ReplaceAllString(s, "")
}

// SuffixSlug disambiguates a colliding slug by appending the last four
// digits of the current millisecond timestamp.
func SuffixSlug(slug string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return slug + "-" + ts[len(ts)-4:]
}

// SummaryLength is how much of a description is kept when no summary is given.
const SummaryLength = 150

// Summarize produces a default summary: the first SummaryLength characters
// of the description followed by an ellipsis.
func Summarize(description string) string {
	runes := []rune(description)
	if len(runes) > SummaryLength {
		runes = runes[:SummaryLength]
	}
	return string(runes) + "..."
}

// SplitList parses a comma-separated list, trimming entries and dropping
// empty ones. Used for technologies and tags submitted as form strings.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// NormalizeList applies the same trim/drop-empty policy to a pre-split list,
// so array and comma-string inputs store identically.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
