package api

import (
	"net/http"
	"time"

	"github.com/dmuuo/portfolio-backend/errs"
	"github.com/dmuuo/portfolio-backend/models"
)

// maxUploadSize bounds multipart request bodies (32 MB).
const maxUploadSize = 32 << 20

// Public listing caches expire on their own even if a flush is missed.
const (
	listCacheTTL   = 5 * time.Minute
	listCacheSweep = 10 * time.Minute
)

// pickEnum validates an enum-valued field, falling back to its default when
// the field is empty.
func pickEnum(value string, valid func(string) bool, fallback, fieldName string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	if !valid(value) {
		return "", errs.NewInvalidFieldError(fieldName, "not an accepted value")
	}
	return value, nil
}

// formHas reports whether the field was present in the submitted form at
// all, so partial updates can distinguish "absent" from "empty".
func formHas(r *http.Request, name string) bool {
	if r.MultipartForm != nil {
		if _, ok := r.MultipartForm.Value[name]; ok {
			return true
		}
	}
	_, ok := r.PostForm[name]
	return ok
}

// formList parses a list-valued field submitted either as repeated form
// entries or as a single comma-separated string. Entries are trimmed and
// empties dropped either way.
func formList(r *http.Request, name string) []string {
	var values []string
	if r.MultipartForm != nil {
		values = r.MultipartForm.Value[name]
	} else {
		values = r.PostForm[name]
	}
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return models.SplitList(values[0])
	}
	return models.NormalizeList(values)
}

// parseBoolLiteral applies the "true"/"false" string contract used by the
// form and query surfaces. Anything else leaves ok false.
func parseBoolLiteral(s string) (value, ok bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

var dateFormats = []string{time.RFC3339, "2006-01-02"}

// parseDate accepts RFC3339 timestamps or plain dates.
func parseDate(s string) (*time.Time, error) {
	var lastErr error
	for _, format := range dateFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
