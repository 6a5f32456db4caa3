// Package storage persists uploaded blobs and hands back the path recorded on entities.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore saves and removes uploaded blobs.
type FileStore interface {
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, storedPath string) error
}

// ObjectKey builds a unique key of the form users/<owner>/<folder>/<yyyy>/<mm>/<dd>/<uuid><ext>.
func ObjectKey(ownerID, folder, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(
		"users",
		sanitizeSegment(ownerID),
		sanitizeSegment(folder),
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
		uuid.NewString()+ext,
	)
}

func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
	if s == "" {
		return "_"
	}
	return s
}
