package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPayload is returned when a base64 image payload cannot be
// decoded.
var ErrInvalidPayload = errors.New("invalid image payload")

// Uploader writes decoded image uploads under a public-serving root and
// hands back public-relative URLs.
type Uploader struct {
	root string
}

func NewUploader(publicDir string) *Uploader {
	return &Uploader{root: publicDir}
}

// SaveDataURI decodes a data-URI-style base64 payload and writes it to
// uploads/{purpose}/{userID}/ under the public root. The filename combines
// a millisecond timestamp with a random suffix so concurrent uploads from
// the same user cannot collide. Returns the public-relative URL.
func (u *Uploader) SaveDataURI(purpose string, userID uuid.UUID, dataURI string) (string, error) {
	payload := dataURI
	ext := "png"

	// Strip the "data:image/png;base64," prefix when present. Bare base64
	// payloads are accepted as-is.
	if strings.HasPrefix(dataURI, "data:") {
		idx := strings.Index(dataURI, ",")
		if idx < 0 {
			return "", ErrInvalidPayload
		}
		ext = extensionFromMIME(dataURI[:idx])
		payload = dataURI[idx+1:]
	}

	if strings.TrimSpace(payload) == "" {
		return "", ErrInvalidPayload
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidPayload
	}

	dir := filepath.Join(u.root, "uploads", purpose, userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return path.Join("/uploads", purpose, userID.String(), filename), nil
}

// Remove deletes the file backing a public-relative URL. A missing file is
// not an error: the row may outlive the file or vice versa.
func (u *Uploader) Remove(publicURL string) error {
	// Clean before checking the prefix so "uploads/../x" cannot pass.
	rel := path.Clean(strings.TrimPrefix(publicURL, "/"))
	if !strings.HasPrefix(rel, "uploads/") {
		return fmt.Errorf("refusing to remove file outside uploads root: %s", publicURL)
	}

	full := filepath.Join(u.root, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}

	return nil
}

func extensionFromMIME(prefix string) string {
	// prefix looks like "data:image/png;base64"
	mime := strings.TrimPrefix(prefix, "data:")
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}

	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "image/svg+xml":
		return "svg"
	default:
		return "png"
	}
}
