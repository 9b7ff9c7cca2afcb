package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// URLPrefix is the root-relative path under which stored files are served.
const URLPrefix = "/uploads"

// Uploader stores uploaded images on local disk under a single directory
// that is served statically. Documents reference files by root-relative
// path, e.g. "/uploads/<filename>".
type Uploader struct {
	dir string
}

// NewUploader ensures the upload directory exists and returns an Uploader
// rooted there.
func NewUploader(dir string) (*Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &Uploader{dir: dir}, nil
}

// Dir returns the storage directory, for static file serving.
func (u *Uploader) Dir() string {
	return u.dir
}

// Store writes the uploaded file to disk under a generated name and returns
// the root-relative path to record on the document.
func (u *Uploader) Store(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}

// Remove deletes a previously stored file by its recorded root-relative
// path. Cleanup is best effort: failures are logged and never propagated,
// so the primary mutation is not failed by a missing file.
func (u *Uploader) Remove(storedPath string) {
	if storedPath == "" {
		return
	}
	// filepath.Base strips any directory components a stored path could carry
	name := filepath.Base(storedPath)
	if name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(u.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", storedPath).Msg("Failed to delete uploaded file")
	}
}
