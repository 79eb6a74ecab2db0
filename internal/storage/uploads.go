package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix is the URL path under which uploaded images are served.
const PublicPrefix = "/uploads/profiles"

// Uploads writes profile images into a fixed public directory. Content type
// and size are not checked before the write, and replacing an image does not
// remove the previous file.
type Uploads struct {
	dir string
}

// NewUploads creates the upload directory if needed.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// Save stores the file under a name derived from the user id, the current
// time and the sanitized original filename, and returns the public URL path.
func (u *Uploads) Save(userID uint, originalName string, data []byte) (string, error) {
	name := fmt.Sprintf("%d-%d-%s", userID, time.Now().UnixMilli(), sanitizeFilename(originalName))
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return PublicPrefix + "/" + name, nil
}

// sanitizeFilename keeps only letters, digits, dots and hyphens.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
