package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/careflow-api/internal/config"
)

// Store persists uploaded report files.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeName reduces a client file name to a safe base name.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := filepath.Base(name)
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, ".")
	if base == "" {
		return "upload"
	}
	return base
}

// NewKey builds "<owner>/<uuid>_<sanitized name>".
func NewKey(ownerID, fileName string) string {
	owner := unsafeChars.ReplaceAllString(ownerID, "_")
	if owner == "" {
		owner = "anonymous"
	}
	return fmt.Sprintf("%s/%s_%s", owner, uuid.NewString(), SanitizeName(fileName))
}

// New selects the backend named by UPLOAD_BACKEND.
func New(cfg *config.Config) (Store, error) {
	switch cfg.UploadBackend {
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	case "s3":
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
